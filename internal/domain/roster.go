package domain

// Initial rosters used by the seed command. These are starting data,
// not a closed set; accounts can be added and removed at runtime.

// SeedExplorers lists the founding explorer class.
var SeedExplorers = []string{
	"Alex Cahill",
	"Alexandra Gusinski",
	"Benjamin Sanders",
	"Catherine Broderick",
	"Gabe Froehlich",
	"Hailey Dybas",
	"John Petrotos",
	"Melanie Schwartz",
	"Neel Behringer",
	"Sloane Creech",
}

// SeedAdvisors lists post advisors authorized to sign off skills.
var SeedAdvisors = []string{
	"Eirinn Rickard", "Jason Wein", "Josh Ziac", "Liz Linde",
	"Andrew Gottshall", "Kara Schiff", "Josh Kovalsky",
	"Mackenzie Diorio", "Scott Baxter", "Alec Sachs",
	"Ellen Ostrander", "Jack Childs", "Eddie Graham",
	"Dan Boudreau", "Andres Moreira", "Andy Bates",
	"Dennis Fogler", "Pat O'Connoer", "Tracy Schietinger", "Chief Heavey",
}

// SeedEmployees lists YPT-trained crew members who may also sign.
var SeedEmployees = []string{
	"Karin Brion", "John McRae", "Linette Usowski",
	"Walter Hughes", "Jack Rodican", "Frank Paolino", "Dina Scungio",
}

// ProgramOverviewText is the post's standing description of the
// riding-checklist program, served alongside the curriculum.
const ProgramOverviewText = `The Explorer Post was founded so that high-school students could not only ride on the ambulance, but also practice medicine in the ambulance. It is important for the Explorers to know where each piece of equipment is on the truck, how to use each piece of equipment, and exactly why they are used. Unfortunately, many of the current riding-explorers either do not have complete knowledge of all the pieces of equipment or do not know how to use them properly.

Although this problem can be mitigated with more riding experience, the proposed Riding-Checklist plan will help ensure competency within all of the riding explorers.

The plan is for each Explorer to carry a checklist with them during their shifts. This checklist will serve as a record of their training and demonstrated competency. For each skill, the Explorer must first be taught by an Explorer Post Advisor, who will sign off that the Explorer has been properly instructed. After this, the Explorer must demonstrate the skill on two separate occasions under the supervision of two additional YPT-trained crew members. Each demonstration must be signed off by a different individual, meaning that a total of three distinct signatures are required for each skill. There is a section of "ALS Assist Skills" that the Explorer can begin checking off after all the BLS skills are completed.

A single individual may not sign off on the same skill more than once, even if the Explorer rides with them on multiple shifts. However, if the Explorer later rides with the same crew again, the other YPT-trained partner (who has not yet signed that specific skill) may sign it. This ensures that the Explorer can continue progressing while still maintaining the requirement of three unique sign-offs per skill.

At the start of each shift, the Explorer will present their checklist to the supervising crew. Any new training or sign-offs completed during the shift will be added before the end of the block, ensuring that the document remains current. To maintain a steady pace of learning and avoid overload, each Explorer may complete a maximum of TWO skill sign-offs per six-hour block. This limit includes both initial instruction and demonstrations.`
