package repository

import (
	"context"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type clienteItem struct {
	IDCliente       int64  `dynamodbav:"id_cliente"`
	RFC             string `dynamodbav:"rfc"`
	Nombre          string `dynamodbav:"nombre"`
	ApellidoPaterno string `dynamodbav:"apellido_paterno"`
	ApellidoMaterno string `dynamodbav:"apellido_materno,omitempty"`
}

type vehiculoItem struct {
	IDVehiculo int64  `dynamodbav:"id_vehiculo"`
	Placas     string `dynamodbav:"placas"`
	Marca      string `dynamodbav:"marca"`
	Modelo     string `dynamodbav:"modelo"`
	IDCliente  int64  `dynamodbav:"id_cliente"`
}

type servicioItem struct {
	ClaveServicio  string `dynamodbav:"clave_servicio"`
	NombreServicio string `dynamodbav:"nombre_servicio"`
	CostoBase      string `dynamodbav:"costo_base"`
}

// CatalogDynamoRepository reads clients, vehicles and services from DynamoDB.
//
// Table requirements:
//   - clientes: PK id_cliente (N)
//   - vehiculos: PK id_vehiculo (N), GSI id_cliente-index (PK: id_cliente)
//   - servicios: PK clave_servicio (S)
type CatalogDynamoRepository struct {
	ddb    DynamoDBAPI
	tables DynamoTables
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb DynamoDBAPI, tables DynamoTables) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{ddb: ddb, tables: tables}
}

func (r *CatalogDynamoRepository) ListClients(ctx context.Context) ([]entities.Client, error) {
	var items []clienteItem
	if err := r.scanAll(ctx, r.tables.Clientes, &items); err != nil {
		return nil, err
	}

	out := make([]entities.Client, 0, len(items))
	for _, it := range items {
		out = append(out, entities.Client{
			ID:       it.IDCliente,
			TaxID:    it.RFC,
			FullName: formatClientName(it.Nombre, it.ApellidoPaterno, it.ApellidoMaterno),
		})
	}
	return out, nil
}

func (r *CatalogDynamoRepository) ListServices(ctx context.Context) ([]entities.Service, error) {
	var items []servicioItem
	if err := r.scanAll(ctx, r.tables.Servicios, &items); err != nil {
		return nil, err
	}

	out := make([]entities.Service, 0, len(items))
	for _, it := range items {
		out = append(out, entities.Service{
			Key:       it.ClaveServicio,
			Name:      it.NombreServicio,
			BasePrice: decimalFromString(it.CostoBase),
		})
	}
	return out, nil
}

func (r *CatalogDynamoRepository) ListVehiclesByClient(ctx context.Context, clientID int64) ([]entities.Vehicle, error) {
	var items []vehiculoItem
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.Vehiculos),
			IndexName:                 aws.String(vehiculosClienteIndex),
			KeyConditionExpression:    aws.String("#cliente = :cliente"),
			ExpressionAttributeNames:  map[string]string{"#cliente": "id_cliente"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":cliente": numberAttr(clientID)},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []vehiculoItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	out := make([]entities.Vehicle, 0, len(items))
	for _, it := range items {
		out = append(out, entities.Vehicle{
			ID:       it.IDVehiculo,
			Plate:    it.Placas,
			Make:     it.Marca,
			Model:    it.Modelo,
			ClientID: it.IDCliente,
		})
	}
	return out, nil
}

func (r *CatalogDynamoRepository) scanAll(ctx context.Context, table string, dst any) error {
	var all []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return err
		}
		all = append(all, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return attributevalue.UnmarshalListOfMaps(all, dst)
}
