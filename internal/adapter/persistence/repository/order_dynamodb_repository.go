package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ordenItem struct {
	FolioOrden           int64  `dynamodbav:"folio_orden"`
	IDVehiculo           int64  `dynamodbav:"id_vehiculo"`
	FechaIngreso         string `dynamodbav:"fecha_ingreso"`
	FechaEstimadaEntrega string `dynamodbav:"fecha_estimada_entrega,omitempty"`
	Estado               string `dynamodbav:"estado"`
	CostoTotal           string `dynamodbav:"costo_total"`
}

type ordenDetalleItem struct {
	FolioOrden      int64  `dynamodbav:"folio_orden"`
	Renglon         int    `dynamodbav:"renglon"`
	ClaveServicio   string `dynamodbav:"clave_servicio"`
	PrecioAlMomento string `dynamodbav:"precio_al_momento"`
}

type contadorItem struct {
	Nombre string `dynamodbav:"nombre"`
	Valor  int64  `dynamodbav:"valor"`
}

// OrderDynamoRepository persists service orders in DynamoDB.
//
// Table requirements:
//   - ordenes_servicio: PK folio_orden (N)
//   - orden_detalles_servicios: PK folio_orden (N), SK renglon (N)
//   - contadores: PK nombre (S); the folio counter lives under "folio_orden"
//   - vehiculos, clientes, servicios: see CatalogDynamoRepository
//
// Folios come from an atomic counter. The header, every line and the
// existence checks on the referenced vehicle and services are written in a
// single TransactWriteItems call, so a failed reference leaves nothing behind
// except a skipped folio.
type OrderDynamoRepository struct {
	ddb    DynamoDBAPI
	tables DynamoTables
	now    func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI, tables DynamoTables) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tables: tables, now: time.Now}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (int64, error) {
	serviceKeys := distinctServiceKeys(o.Lines)
	if actions := 2 + len(serviceKeys) + len(o.Lines); actions > maxTransactItems {
		return 0, fmt.Errorf("%w: %d actions, limit %d", ErrTooManyLines, actions, maxTransactItems)
	}

	folio, err := r.allocateFolio(ctx)
	if err != nil {
		return 0, err
	}

	items, err := r.buildTransaction(folio, o, serviceKeys)
	if err != nil {
		return 0, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		log.Printf("[order][repository] dynamodb transaction cancelled folio=%d vehicle_id=%d lines=%d err=%v", folio, o.VehicleID, len(o.Lines), err)
		if isConditionCancellation(err) {
			return 0, fmt.Errorf("%w: %w", ErrInvalidReference, err)
		}
		return 0, err
	}
	return folio, nil
}

func (r *OrderDynamoRepository) allocateFolio(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Contadores),
		Key: map[string]types.AttributeValue{
			"nombre": stringAttr(folioCounterName),
		},
		UpdateExpression:          aws.String("ADD #valor :one"),
		ExpressionAttributeNames:  map[string]string{"#valor": "valor"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": numberAttr(1)},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("allocate folio: %w", err)
	}

	var c contadorItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &c); err != nil {
		return 0, fmt.Errorf("allocate folio: %w", err)
	}
	if c.Valor <= 0 {
		return 0, fmt.Errorf("allocate folio: counter returned %d", c.Valor)
	}
	return c.Valor, nil
}

func (r *OrderDynamoRepository) buildTransaction(folio int64, o entities.Order, serviceKeys []string) ([]types.TransactWriteItem, error) {
	header := ordenItem{
		FolioOrden:   folio,
		IDVehiculo:   o.VehicleID,
		FechaIngreso: timeToString(r.now()),
		Estado:       string(o.Status),
		CostoTotal:   decimalToString(o.TotalCost),
	}
	if o.EstimatedDeliveryAt != nil {
		header.FechaEstimadaEntrega = timeToString(*o.EstimatedDeliveryAt)
	}
	headerAV, err := attributevalue.MarshalMap(header)
	if err != nil {
		return nil, err
	}

	items := make([]types.TransactWriteItem, 0, 2+len(serviceKeys)+len(o.Lines))
	items = append(items,
		types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.tables.Ordenes),
			Item:                     headerAV,
			ConditionExpression:      aws.String("attribute_not_exists(#folio)"),
			ExpressionAttributeNames: map[string]string{"#folio": "folio_orden"},
		}},
		types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName:                aws.String(r.tables.Vehiculos),
			Key:                      map[string]types.AttributeValue{"id_vehiculo": numberAttr(o.VehicleID)},
			ConditionExpression:      aws.String("attribute_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id_vehiculo"},
		}},
	)

	for _, key := range serviceKeys {
		items = append(items, types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName:                aws.String(r.tables.Servicios),
			Key:                      map[string]types.AttributeValue{"clave_servicio": stringAttr(key)},
			ConditionExpression:      aws.String("attribute_exists(#clave)"),
			ExpressionAttributeNames: map[string]string{"#clave": "clave_servicio"},
		}})
	}

	for i, line := range o.Lines {
		av, err := attributevalue.MarshalMap(ordenDetalleItem{
			FolioOrden:      folio,
			Renglon:         i + 1,
			ClaveServicio:   line.ServiceKey,
			PrecioAlMomento: decimalToString(line.PriceAtSale),
		})
		if err != nil {
			return nil, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(r.tables.OrdenDetalles),
			Item:      av,
		}})
	}
	return items, nil
}

// NextFolio reads the counter without incrementing it.
func (r *OrderDynamoRepository) NextFolio(ctx context.Context) (int64, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Contadores),
		Key: map[string]types.AttributeValue{
			"nombre": stringAttr(folioCounterName),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 1, nil
	}

	var c contadorItem
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return 0, err
	}
	return c.Valor + 1, nil
}

// ListSummaries scans the orders and joins vehicles and clients in memory.
// Orders whose vehicle or client is missing are skipped.
func (r *OrderDynamoRepository) ListSummaries(ctx context.Context) ([]entities.OrderSummary, error) {
	var orders []ordenItem
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tables.Ordenes),
			ExclusiveStartKey: startKey,
			ConsistentRead:    aws.Bool(true),
		})
		if err != nil {
			return nil, err
		}
		var page []ordenItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		orders = append(orders, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	vehicles, err := r.vehiclesByID(ctx, orders)
	if err != nil {
		return nil, err
	}
	clients, err := r.clientsByID(ctx, vehicles)
	if err != nil {
		return nil, err
	}

	out := make([]entities.OrderSummary, 0, len(orders))
	for _, o := range orders {
		v, ok := vehicles[o.IDVehiculo]
		if !ok {
			continue
		}
		c, ok := clients[v.IDCliente]
		if !ok {
			continue
		}
		out = append(out, entities.OrderSummary{
			Folio:       o.FolioOrden,
			IntakeAt:    timeFromString(o.FechaIngreso),
			ClientName:  formatClientName(c.Nombre, c.ApellidoPaterno, c.ApellidoMaterno),
			VehicleInfo: formatVehicleInfo(v.Marca, v.Modelo, v.Placas),
			Status:      entities.OrderStatus(o.Estado),
			Total:       decimalFromString(o.CostoTotal),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Folio > out[j].Folio })
	return out, nil
}

func (r *OrderDynamoRepository) vehiclesByID(ctx context.Context, orders []ordenItem) (map[int64]vehiculoItem, error) {
	seen := make(map[int64]bool)
	var keys []map[string]types.AttributeValue
	for _, o := range orders {
		if seen[o.IDVehiculo] {
			continue
		}
		seen[o.IDVehiculo] = true
		keys = append(keys, map[string]types.AttributeValue{"id_vehiculo": numberAttr(o.IDVehiculo)})
	}

	raw, err := batchGetItems(ctx, r.ddb, r.tables.Vehiculos, keys)
	if err != nil {
		return nil, err
	}
	var items []vehiculoItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	out := make(map[int64]vehiculoItem, len(items))
	for _, v := range items {
		out[v.IDVehiculo] = v
	}
	return out, nil
}

func (r *OrderDynamoRepository) clientsByID(ctx context.Context, vehicles map[int64]vehiculoItem) (map[int64]clienteItem, error) {
	seen := make(map[int64]bool)
	var keys []map[string]types.AttributeValue
	for _, v := range vehicles {
		if seen[v.IDCliente] {
			continue
		}
		seen[v.IDCliente] = true
		keys = append(keys, map[string]types.AttributeValue{"id_cliente": numberAttr(v.IDCliente)})
	}

	raw, err := batchGetItems(ctx, r.ddb, r.tables.Clientes, keys)
	if err != nil {
		return nil, err
	}
	var items []clienteItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	out := make(map[int64]clienteItem, len(items))
	for _, c := range items {
		out[c.IDCliente] = c
	}
	return out, nil
}

// ListLineDetails queries the lines of one folio in renglon order and joins
// the service names. Lines whose service is missing are skipped.
func (r *OrderDynamoRepository) ListLineDetails(ctx context.Context, folio int64) ([]entities.LineDetail, error) {
	var lines []ordenDetalleItem
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.OrdenDetalles),
			KeyConditionExpression:    aws.String("#folio = :folio"),
			ExpressionAttributeNames:  map[string]string{"#folio": "folio_orden"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":folio": numberAttr(folio)},
			ExclusiveStartKey:         startKey,
			ConsistentRead:            aws.Bool(true),
		})
		if err != nil {
			return nil, err
		}
		var page []ordenDetalleItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		lines = append(lines, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	out := make([]entities.LineDetail, 0, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(lines))
	for _, k := range distinctDetailKeys(lines) {
		keys = append(keys, map[string]types.AttributeValue{"clave_servicio": stringAttr(k)})
	}
	raw, err := batchGetItems(ctx, r.ddb, r.tables.Servicios, keys)
	if err != nil {
		return nil, err
	}
	var services []servicioItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &services); err != nil {
		return nil, err
	}
	names := make(map[string]string, len(services))
	for _, s := range services {
		names[s.ClaveServicio] = s.NombreServicio
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].Renglon < lines[j].Renglon })
	for _, l := range lines {
		name, ok := names[l.ClaveServicio]
		if !ok {
			continue
		}
		out = append(out, entities.LineDetail{
			ServiceKey:   l.ClaveServicio,
			ServiceName:  name,
			PriceCharged: decimalFromString(l.PrecioAlMomento),
		})
	}
	return out, nil
}

func distinctServiceKeys(lines []entities.OrderLine) []string {
	seen := make(map[string]bool, len(lines))
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		if seen[l.ServiceKey] {
			continue
		}
		seen[l.ServiceKey] = true
		keys = append(keys, l.ServiceKey)
	}
	return keys
}

func distinctDetailKeys(lines []ordenDetalleItem) []string {
	seen := make(map[string]bool, len(lines))
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		if seen[l.ClaveServicio] {
			continue
		}
		seen[l.ClaveServicio] = true
		keys = append(keys, l.ClaveServicio)
	}
	return keys
}

// isConditionCancellation reports whether a transaction was cancelled because
// one of its conditions did not hold.
func isConditionCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
