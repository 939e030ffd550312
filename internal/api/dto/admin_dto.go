package dto

// UnlockSiteRequest payload for the site gate.
type UnlockSiteRequest struct {
	Password string `json:"password"`
}

// UnlockSiteResponse returns the token clients replay on later calls.
type UnlockSiteResponse struct {
	SiteToken string `json:"site_token"`
}

// RotateSitePasswordRequest admin payload.
type RotateSitePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// AppVersionRequest admin payload.
type AppVersionRequest struct {
	Version string `json:"version"`
}

// AppVersionResponse reports the active interface version.
type AppVersionResponse struct {
	Version string `json:"version"`
}
