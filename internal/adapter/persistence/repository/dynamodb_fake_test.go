package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// fakeDynamo is an in-memory DynamoDBAPI that understands the handful of
// expressions the repositories send.
type fakeDynamo struct {
	mu       sync.Mutex
	keys     map[string][]string // table -> partition key [, sort key]
	indexes  map[string]string   // index -> partition key attribute
	items    map[string]map[string]map[string]types.AttributeValue
	pageSize int

	unprocessOnce bool
	batchCalls    int
	transactCalls int
}

func newFakeDynamo(tables DynamoTables) *fakeDynamo {
	return &fakeDynamo{
		keys: map[string][]string{
			tables.Clientes:      {"id_cliente"},
			tables.Vehiculos:     {"id_vehiculo"},
			tables.Servicios:     {"clave_servicio"},
			tables.Ordenes:       {"folio_orden"},
			tables.OrdenDetalles: {"folio_orden", "renglon"},
			tables.Contadores:    {"nombre"},
		},
		indexes: map[string]string{vehiculosClienteIndex: "id_cliente"},
		items:   map[string]map[string]map[string]types.AttributeValue{},
	}
}

func avString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		return "N:" + v.Value
	case *types.AttributeValueMemberS:
		return "S:" + v.Value
	}
	return ""
}

func (f *fakeDynamo) keyOf(table string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, k := range f.keys[table] {
		parts = append(parts, avString(item[k]))
	}
	return strings.Join(parts, "|")
}

func (f *fakeDynamo) keyAttrs(table string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := map[string]types.AttributeValue{}
	for _, k := range f.keys[table] {
		out[k] = item[k]
	}
	return out
}

func (f *fakeDynamo) get(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, bool) {
	it, ok := f.items[table][f.keyOf(table, key)]
	return it, ok
}

func (f *fakeDynamo) store(table string, item map[string]types.AttributeValue) {
	if f.items[table] == nil {
		f.items[table] = map[string]map[string]types.AttributeValue{}
	}
	f.items[table][f.keyOf(table, item)] = item
}

func (f *fakeDynamo) put(t *testing.T, table string, v any) {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(table, av)
}

func (f *fakeDynamo) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[table])
}

// sorted returns a table's items ordered by key, numeric keys numerically.
func (f *fakeDynamo) sorted(table string) []map[string]types.AttributeValue {
	out := make([]map[string]types.AttributeValue, 0, len(f.items[table]))
	for _, it := range f.items[table] {
		out = append(out, it)
	}
	keys := f.keys[table]
	sort.Slice(out, func(i, j int) bool {
		for _, k := range keys {
			a, b := out[i][k], out[j][k]
			if avString(a) == avString(b) {
				continue
			}
			an, aok := a.(*types.AttributeValueMemberN)
			bn, bok := b.(*types.AttributeValueMemberN)
			if aok && bok {
				x, _ := strconv.ParseInt(an.Value, 10, 64)
				y, _ := strconv.ParseInt(bn.Value, 10, 64)
				return x < y
			}
			return avString(a) < avString(b)
		}
		return false
	})
	return out
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, _ := f.get(aws.ToString(in.TableName), in.Key)
	return &dynamodb.GetItemOutput{Item: it}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := strings.Fields(aws.ToString(in.UpdateExpression))
	if len(fields) != 3 || fields[0] != "ADD" {
		return nil, errors.New("fake: unsupported update expression")
	}
	attr := in.ExpressionAttributeNames[fields[1]]
	inc, _ := strconv.ParseInt(in.ExpressionAttributeValues[fields[2]].(*types.AttributeValueMemberN).Value, 10, 64)

	table := aws.ToString(in.TableName)
	item, ok := f.get(table, in.Key)
	if !ok {
		item = map[string]types.AttributeValue{}
		for k, v := range in.Key {
			item[k] = v
		}
	}
	var current int64
	if n, ok := item[attr].(*types.AttributeValueMemberN); ok {
		current, _ = strconv.ParseInt(n.Value, 10, 64)
	}
	item[attr] = numberAttr(current + inc)
	f.store(table, item)
	return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{attr: item[attr]}}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := strings.Fields(aws.ToString(in.KeyConditionExpression))
	if len(fields) != 3 || fields[1] != "=" {
		return nil, errors.New("fake: unsupported key condition")
	}
	attr := in.ExpressionAttributeNames[fields[0]]
	want := avString(in.ExpressionAttributeValues[fields[2]])

	var out []map[string]types.AttributeValue
	for _, it := range f.sorted(aws.ToString(in.TableName)) {
		if avString(it[attr]) == want {
			out = append(out, it)
		}
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := aws.ToString(in.TableName)
	all := f.sorted(table)
	start := 0
	if len(in.ExclusiveStartKey) > 0 {
		last := f.keyOf(table, in.ExclusiveStartKey)
		for i, it := range all {
			if f.keyOf(table, it) == last {
				start = i + 1
				break
			}
		}
	}
	end := len(all)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &dynamodb.ScanOutput{Items: all[start:end]}
	if end < len(all) {
		out.LastEvaluatedKey = f.keyAttrs(table, all[end-1])
	}
	return out, nil
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++

	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
	for table, req := range in.RequestItems {
		keys := req.Keys
		if f.unprocessOnce && len(keys) > 1 {
			f.unprocessOnce = false
			out.UnprocessedKeys = map[string]types.KeysAndAttributes{
				table: {Keys: keys[len(keys)-1:]},
			}
			keys = keys[:len(keys)-1]
		}
		for _, k := range keys {
			if it, ok := f.get(table, k); ok {
				out.Responses[table] = append(out.Responses[table], it)
			}
		}
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactCalls++

	if len(in.TransactItems) > maxTransactItems {
		return nil, errors.New("fake: too many transact items")
	}

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		reasons[i].Code = aws.String("None")
		switch {
		case ti.Put != nil:
			table := aws.ToString(ti.Put.TableName)
			if strings.HasPrefix(aws.ToString(ti.Put.ConditionExpression), "attribute_not_exists") {
				if _, exists := f.get(table, ti.Put.Item); exists {
					reasons[i].Code = aws.String("ConditionalCheckFailed")
					failed = true
				}
			}
		case ti.ConditionCheck != nil:
			table := aws.ToString(ti.ConditionCheck.TableName)
			if strings.HasPrefix(aws.ToString(ti.ConditionCheck.ConditionExpression), "attribute_exists") {
				if _, exists := f.get(table, ti.ConditionCheck.Key); !exists {
					reasons[i].Code = aws.String("ConditionalCheckFailed")
					failed = true
				}
			}
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled, please refer cancellation reasons for specific reasons"),
			CancellationReasons: reasons,
		}
	}

	for _, ti := range in.TransactItems {
		if ti.Put != nil {
			f.store(aws.ToString(ti.Put.TableName), ti.Put.Item)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func seedDynamoCatalog(t *testing.T, f *fakeDynamo, tables DynamoTables) {
	t.Helper()
	f.put(t, tables.Clientes, clienteItem{IDCliente: 1, RFC: "GOLA800101AB1", Nombre: "Ana", ApellidoPaterno: "Gómez", ApellidoMaterno: "López"})
	f.put(t, tables.Clientes, clienteItem{IDCliente: 2, RFC: "PERL750505CD2", Nombre: "Luis", ApellidoPaterno: "Pérez"})
	f.put(t, tables.Clientes, clienteItem{IDCliente: 3, RFC: "RUMA900909EF3", Nombre: "Marta", ApellidoPaterno: "Ruiz"})
	f.put(t, tables.Vehiculos, vehiculoItem{IDVehiculo: 7, Placas: "ABC-123", Marca: "Nissan", Modelo: "Versa", IDCliente: 1})
	f.put(t, tables.Vehiculos, vehiculoItem{IDVehiculo: 8, Placas: "XYZ-987", Marca: "Ford", Modelo: "Ranger", IDCliente: 2})
	f.put(t, tables.Vehiculos, vehiculoItem{IDVehiculo: 9, Placas: "JKL-456", Marca: "Chevrolet", Modelo: "Aveo", IDCliente: 1})
	f.put(t, tables.Servicios, servicioItem{ClaveServicio: "OIL01", NombreServicio: "Cambio de aceite", CostoBase: "350.00"})
	f.put(t, tables.Servicios, servicioItem{ClaveServicio: "TIRE1", NombreServicio: "Rotación de llantas", CostoBase: "100.00"})
	f.put(t, tables.Servicios, servicioItem{ClaveServicio: "BRK02", NombreServicio: "Balatas delanteras", CostoBase: "800.00"})
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := aws.ToString(in.TableName)
	if strings.HasPrefix(aws.ToString(in.ConditionExpression), "attribute_not_exists") {
		if _, exists := f.get(table, in.Item); exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	f.store(table, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return &dynamodb.CreateTableOutput{TableDescription: &types.TableDescription{TableName: in.TableName, TableStatus: types.TableStatusActive}}, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableName: in.TableName, TableStatus: types.TableStatusActive}}, nil
}
