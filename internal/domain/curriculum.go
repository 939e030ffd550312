package domain

// SignOffRole identifies which of the three signature slots a sign-off
// fills. Every skill requires all three, each from a different advisor.
type SignOffRole string

const (
	RoleTaughtBy SignOffRole = "TAUGHT_BY"
	RoleDemo1    SignOffRole = "DEMO_1"
	RoleDemo2    SignOffRole = "DEMO_2"
)

// SignOffRoles lists the slots in booklet order.
var SignOffRoles = []SignOffRole{RoleTaughtBy, RoleDemo1, RoleDemo2}

// SignaturesPerSkill is the number of distinct sign-offs a skill needs.
const SignaturesPerSkill = 3

// SkillDefinition is a single line item on the riding checklist.
type SkillDefinition struct {
	Name string
}

// SectionDefinition groups related skills. ALS sections stay locked
// until every BLS skill has its full signature count.
type SectionDefinition struct {
	Title  string
	ALS    bool
	Skills []SkillDefinition
}

// TrainingSections is the fixed curriculum. It is configuration, not
// user data; changing it is a code change.
var TrainingSections = []SectionDefinition{
	{
		Title: "Equipment & Truck Checks",
		Skills: []SkillDefinition{
			{Name: "Perform and complete a truck check"},
			{Name: "Identify all primary bags (green O₂ bag, red ALS bag, etc.)"},
		},
	},
	{
		Title: "Patient Movement & Transport",
		Skills: []SkillDefinition{
			{Name: "Load and unload the empty stretcher safely"},
			{Name: "Assemble and operate the stair chair"},
			{Name: "Perform proper splinting and identify all splints on the truck"},
			{Name: "C-Collar sizing and applying"},
		},
	},
	{
		Title: "Airway & Oxygen",
		Skills: []SkillDefinition{
			{Name: "Open and regulate an oxygen tank"},
			{Name: "Apply a nasal cannula and a non-rebreather mask"},
			{Name: "Operate and store the suction catheter"},
			{Name: "Set up and operate CPAP"},
		},
	},
	{
		Title: "Monitoring & Vital Signs",
		Skills: []SkillDefinition{
			{Name: "Operate the monitor (blood pressure, heart rate, SpO₂)"},
			{Name: "Take manual blood pressure"},
			{Name: "Assess respiratory rate"},
			{Name: "Perform blood glucose testing"},
			{Name: "Perform a 4-lead EKG setup"},
			{Name: "Glucometer (finger Stick, not Sharp)"},
		},
	},
	{
		Title: "Basic Medical Skills",
		Skills: []SkillDefinition{
			{Name: "Apply bandages and dressings correctly"},
			{Name: "Flush an IV"},
			{Name: "Operate the Lucas device"},
		},
	},
	{
		Title: "Post-Call Procedures",
		Skills: []SkillDefinition{
			{Name: "Clean and prepare the stretcher after a call"},
			{Name: "Clean and prepare equipment for the next call"},
			{Name: "Properly stow gear in the monitor after a call"},
			{Name: "Stock room equipment locations"},
		},
	},
	{
		Title: "ALS Assist Skills",
		ALS:   true,
		Skills: []SkillDefinition{
			{Name: "Perform a 12-lead EKG setup"},
			{Name: "Spike a bag"},
		},
	},
}

// FindSection returns the section containing the named skill.
func FindSection(skill string) (*SectionDefinition, bool) {
	for i := range TrainingSections {
		for _, s := range TrainingSections[i].Skills {
			if s.Name == skill {
				return &TrainingSections[i], true
			}
		}
	}
	return nil, false
}

// SectionByTitle looks up a section definition by its title.
func SectionByTitle(title string) (*SectionDefinition, bool) {
	for i := range TrainingSections {
		if TrainingSections[i].Title == title {
			return &TrainingSections[i], true
		}
	}
	return nil, false
}

// TotalSkills counts every skill in the curriculum.
func TotalSkills() int {
	n := 0
	for _, sec := range TrainingSections {
		n += len(sec.Skills)
	}
	return n
}

// TotalRequiredSignoffs is the full booklet signature count.
func TotalRequiredSignoffs() int {
	return TotalSkills() * SignaturesPerSkill
}

// NonALSRequiredSignoffs counts the signatures needed before ALS
// sections unlock.
func NonALSRequiredSignoffs() int {
	n := 0
	for _, sec := range TrainingSections {
		if !sec.ALS {
			n += len(sec.Skills) * SignaturesPerSkill
		}
	}
	return n
}

// RankFor maps a completion percentage to a booklet rank.
func RankFor(percentage int) string {
	switch {
	case percentage >= 75:
		return "Certified"
	case percentage >= 50:
		return "Advanced"
	case percentage >= 25:
		return "Intermediate"
	default:
		return "Novice"
	}
}
