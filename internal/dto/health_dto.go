package dto

type ConfigResponse struct {
	GoogleMapsAPIKey string `json:"googleMapsApiKey"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	Database         string `json:"database"`
	DBInitialized    bool   `json:"dbInitialized"`
	UsersTableExists bool   `json:"usersTableExists"`
	UserCount        int64  `json:"userCount"`
}
