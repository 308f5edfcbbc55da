package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the DynamoDB
// repositories.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

const (
	defaultClientesTable      = "clientes"
	defaultVehiculosTable     = "vehiculos"
	defaultServiciosTable     = "servicios"
	defaultOrdenesTable       = "ordenes_servicio"
	defaultOrdenDetallesTable = "orden_detalles_servicios"
	defaultContadoresTable    = "contadores"

	vehiculosClienteIndex = "id_cliente-index"
	folioCounterName      = "folio_orden"

	// DynamoDB limits.
	maxBatchGetKeys       = 100
	maxTransactItems      = 100
	maxBatchGetAttempts   = 5
	batchGetRetryInterval = 50 * time.Millisecond
)

// DynamoTables holds the physical table names used by the DynamoDB driver.
type DynamoTables struct {
	Clientes      string
	Vehiculos     string
	Servicios     string
	Ordenes       string
	OrdenDetalles string
	Contadores    string
}

// NewDynamoTables resolves table names from the environment, each one
// optionally overridden (for example CLIENTES_TABLE) and prefixed.
func NewDynamoTables(prefix string) DynamoTables {
	return DynamoTables{
		Clientes:      prefix + getenvDefault("CLIENTES_TABLE", defaultClientesTable),
		Vehiculos:     prefix + getenvDefault("VEHICULOS_TABLE", defaultVehiculosTable),
		Servicios:     prefix + getenvDefault("SERVICIOS_TABLE", defaultServiciosTable),
		Ordenes:       prefix + getenvDefault("ORDENES_TABLE", defaultOrdenesTable),
		OrdenDetalles: prefix + getenvDefault("ORDEN_DETALLES_TABLE", defaultOrdenDetallesTable),
		Contadores:    prefix + getenvDefault("CONTADORES_TABLE", defaultContadoresTable),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func numberAttr(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", v)}
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// Money is stored as a fixed two-decimal string, like the relational
// NUMERIC(10,2) columns.
func decimalToString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func decimalFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func timeFromString(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// formatClientName joins the name parts, skipping an empty maternal surname.
func formatClientName(nombre, paterno, materno string) string {
	name := nombre + " " + paterno
	if m := strings.TrimSpace(materno); m != "" {
		name += " " + m
	}
	return name
}

func formatVehicleInfo(marca, modelo, placas string) string {
	return marca + " " + modelo + " - " + placas
}

// batchGetItems fetches every key from one table, chunking at the BatchGetItem
// limit and retrying unprocessed keys. Missing items are simply absent from
// the result.
func batchGetItems(ctx context.Context, ddb DynamoDBAPI, table string, keys []map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	var out []map[string]types.AttributeValue
	for start := 0; start < len(keys); start += maxBatchGetKeys {
		end := min(start+maxBatchGetKeys, len(keys))
		request := map[string]types.KeysAndAttributes{
			table: {Keys: keys[start:end], ConsistentRead: aws.Bool(true)},
		}

		for attempt := 1; len(request) > 0; attempt++ {
			if attempt > maxBatchGetAttempts {
				return nil, fmt.Errorf("batch get %s: unprocessed keys after %d attempts", table, maxBatchGetAttempts)
			}
			if attempt > 1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(batchGetRetryInterval * time.Duration(attempt-1)):
				}
			}

			resp, err := ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			out = append(out, resp.Responses[table]...)
			request = resp.UnprocessedKeys
		}
	}
	return out, nil
}
