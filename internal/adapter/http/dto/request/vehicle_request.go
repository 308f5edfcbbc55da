package request

// Both forms identify the client whose vehicles are listed:
// GET /v1/clients/:client_id/vehicles and GET /v1/vehicles?client_id=.

// Any integer is accepted; ids with no client behind them list nothing.

type ClientURI struct {
	ClientID int64 `uri:"client_id"`
}

// ClientID is a pointer so that client_id=0 binds while a missing parameter
// still fails "required".
type VehiclesQuery struct {
	ClientID *int64 `form:"client_id" binding:"required"`
}
