package vehicles

type newVehicleRequest struct {
	ClientID *int   `json:"idClient" binding:"required"`
	Brand    string `json:"brand" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     *int   `json:"year" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Plate    string `json:"plate" binding:"required"`
	Doors    *int   `json:"doors" binding:"required"`
	Motor    string `json:"motor" binding:"required"`
}

type updateVehicleRequest struct {
	VehicleID *int    `json:"idVehicle" binding:"required"`
	Brand     *string `json:"brand"`
	Model     *string `json:"model"`
	Year      *int    `json:"year"`
	Color     *string `json:"color"`
	Plate     *string `json:"plate"`
	Doors     *int    `json:"doors"`
	Motor     *string `json:"motor"`
}
