package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ordenes_servicio/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableActiveTimeout = 2 * time.Minute

// DynamoDBAdminAPI is the subset of *dynamodb.Client used to create tables
// and load catalog fixtures.
type DynamoDBAdminAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var _ DynamoDBAdminAPI = (*dynamodb.Client)(nil)

type keyAttr struct {
	name string
	typ  types.ScalarAttributeType
}

// dynamoTableDefinitions lists every table with its partition key and
// optional sort key. Billing is on demand.
func dynamoTableDefinitions(t DynamoTables) []*dynamodb.CreateTableInput {
	def := func(name string, pk keyAttr, sk *keyAttr) *dynamodb.CreateTableInput {
		in := &dynamodb.CreateTableInput{
			TableName:   aws.String(name),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(pk.name), AttributeType: pk.typ},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(pk.name), KeyType: types.KeyTypeHash},
			},
		}
		if sk != nil {
			in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{AttributeName: aws.String(sk.name), AttributeType: sk.typ})
			in.KeySchema = append(in.KeySchema, types.KeySchemaElement{AttributeName: aws.String(sk.name), KeyType: types.KeyTypeRange})
		}
		return in
	}

	vehiculos := def(t.Vehiculos, keyAttr{"id_vehiculo", types.ScalarAttributeTypeN}, nil)
	vehiculos.AttributeDefinitions = append(vehiculos.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String("id_cliente"), AttributeType: types.ScalarAttributeTypeN,
	})
	vehiculos.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName: aws.String(vehiculosClienteIndex),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id_cliente"), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}

	return []*dynamodb.CreateTableInput{
		def(t.Clientes, keyAttr{"id_cliente", types.ScalarAttributeTypeN}, nil),
		vehiculos,
		def(t.Servicios, keyAttr{"clave_servicio", types.ScalarAttributeTypeS}, nil),
		def(t.Ordenes, keyAttr{"folio_orden", types.ScalarAttributeTypeN}, nil),
		def(t.OrdenDetalles, keyAttr{"folio_orden", types.ScalarAttributeTypeN}, &keyAttr{"renglon", types.ScalarAttributeTypeN}),
		def(t.Contadores, keyAttr{"nombre", types.ScalarAttributeTypeS}, nil),
	}
}

// CreateDynamoTables creates the missing tables and waits until they are
// active. Existing tables are left untouched.
func CreateDynamoTables(ctx context.Context, ddb *dynamodb.Client, t DynamoTables) error {
	created := 0
	for _, in := range dynamoTableDefinitions(t) {
		name := aws.ToString(in.TableName)
		_, err := ddb.CreateTable(ctx, in)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(ddb)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, tableActiveTimeout); err != nil {
			return fmt.Errorf("wait table %s: %w", name, err)
		}
		created++
	}
	log.Printf("[database][dynamodb] tables ready created=%d orders_table=%s", created, t.Ordenes)
	return nil
}

// SeedDynamoCatalog writes the fixture rows that do not exist yet.
func SeedDynamoCatalog(ctx context.Context, ddb DynamoDBAdminAPI, t DynamoTables, f database.CatalogFixture) (database.SeedResult, error) {
	var res database.SeedResult

	for _, c := range f.Clients {
		ok, err := putIfAbsent(ctx, ddb, t.Clientes, "id_cliente", clienteItem{
			IDCliente: c.ID, RFC: c.RFC, Nombre: c.Nombre,
			ApellidoPaterno: c.ApellidoPaterno, ApellidoMaterno: c.ApellidoMaterno,
		})
		if err != nil {
			return res, fmt.Errorf("seed client %d: %w", c.ID, err)
		}
		if ok {
			res.Clients++
		}
	}

	for _, v := range f.Vehicles {
		ok, err := putIfAbsent(ctx, ddb, t.Vehiculos, "id_vehiculo", vehiculoItem{
			IDVehiculo: v.ID, Placas: v.Placas, Marca: v.Marca, Modelo: v.Modelo, IDCliente: v.ClientID,
		})
		if err != nil {
			return res, fmt.Errorf("seed vehicle %d: %w", v.ID, err)
		}
		if ok {
			res.Vehicles++
		}
	}

	for _, s := range f.Services {
		price, err := database.ParseFixturePrice(s.CostoBase)
		if err != nil {
			return res, fmt.Errorf("seed service %s: %w", s.Clave, err)
		}
		ok, err := putIfAbsent(ctx, ddb, t.Servicios, "clave_servicio", servicioItem{
			ClaveServicio: s.Clave, NombreServicio: s.Nombre, CostoBase: decimalToString(price),
		})
		if err != nil {
			return res, fmt.Errorf("seed service %s: %w", s.Clave, err)
		}
		if ok {
			res.Services++
		}
	}

	log.Printf("[database][seed] dynamodb catalog loaded clients=%d vehicles=%d services=%d", res.Clients, res.Vehicles, res.Services)
	return res, nil
}

func putIfAbsent(ctx context.Context, ddb DynamoDBAdminAPI, table, pk string, item any) (bool, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return false, err
	}

	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": pk},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
