package entities

import "github.com/shopspring/decimal"

// Client, Vehicle and Service are read-only catalog rows maintained outside
// this service. Orders reference them but never mutate them.

type Client struct {
	ID       int64  `json:"id"`
	TaxID    string `json:"rfc"`
	FullName string `json:"fullName"`
}

type Vehicle struct {
	ID       int64  `json:"id"`
	Plate    string `json:"plate"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	ClientID int64  `json:"clientId"`
}

// Service is a labor service of the catalog. Key is the stable string
// identifier (clave de servicio), not a number.
type Service struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
}
