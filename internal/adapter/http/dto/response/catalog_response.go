package response

import "ordenes_servicio/internal/domain/entities"

type ClientResponse struct {
	ID       int64  `json:"id"`
	RFC      string `json:"rfc"`
	FullName string `json:"fullName"`
}

type VehicleResponse struct {
	ID       int64  `json:"id"`
	Plate    string `json:"plate"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	ClientID int64  `json:"clientId"`
}

type ServiceResponse struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

func FromClients(in []entities.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(in))
	for _, c := range in {
		out = append(out, ClientResponse{ID: c.ID, RFC: c.TaxID, FullName: c.FullName})
	}
	return out
}

func FromVehicles(in []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(in))
	for _, v := range in {
		out = append(out, VehicleResponse{ID: v.ID, Plate: v.Plate, Make: v.Make, Model: v.Model, ClientID: v.ClientID})
	}
	return out
}

func FromServices(in []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(in))
	for _, s := range in {
		out = append(out, ServiceResponse{Key: s.Key, Name: s.Name, BasePrice: money(s.BasePrice)})
	}
	return out
}
