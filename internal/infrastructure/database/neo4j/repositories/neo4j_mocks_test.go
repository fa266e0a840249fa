package repositories

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/mock"

	infraNeo4j "github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"
)

// MockInfraDriver implements infraNeo4j.DriverInterface by running the work
// against its transaction.
type MockInfraDriver struct {
	mock.Mock
	Tx *MockInfraTransaction
}

func (m *MockInfraDriver) ExecuteRead(ctx context.Context, work infraNeo4j.TransactionWork) (any, error) {
	m.Called(ctx)
	return work(m.Tx)
}

func (m *MockInfraDriver) ExecuteWrite(ctx context.Context, work infraNeo4j.TransactionWork) (any, error) {
	m.Called(ctx)
	return work(m.Tx)
}

func (m *MockInfraDriver) HealthCheck(ctx context.Context) common.ComponentHealth {
	return m.Called(ctx).Get(0).(common.ComponentHealth)
}

func (m *MockInfraDriver) Close() error {
	return m.Called().Error(0)
}

// MockInfraTransaction records every statement it runs.
type MockInfraTransaction struct {
	mock.Mock
	Statements []string
	Params     []map[string]any
}

func (m *MockInfraTransaction) Run(ctx context.Context, cypher string, params map[string]any) (infraNeo4j.Result, error) {
	m.Statements = append(m.Statements, cypher)
	m.Params = append(m.Params, params)
	args := m.Called(ctx, cypher, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(infraNeo4j.Result), args.Error(1)
}

// MockResult replays fixed records.
type MockResult struct {
	Records []*neo4j.Record
	Current int
}

func (m *MockResult) Next(context.Context) bool {
	if m.Current < len(m.Records) {
		m.Current++
		return true
	}
	return false
}

func (m *MockResult) Record() *neo4j.Record { return m.Records[m.Current-1] }
func (m *MockResult) Err() error            { return nil }
func (m *MockResult) Consume(context.Context) (neo4j.ResultSummary, error) {
	return nil, nil
}

func SetupMockDriver() (*MockInfraDriver, *MockInfraTransaction) {
	tx := new(MockInfraTransaction)
	d := &MockInfraDriver{Tx: tx}
	d.On("ExecuteRead", mock.Anything).Return()
	d.On("ExecuteWrite", mock.Anything).Return()
	return d, tx
}

//Personal.AI order the ending
