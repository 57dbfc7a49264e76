package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockExecutor replays queued results in order; once the queue is empty it
// returns MockResult.
type MockExecutor struct {
	Executed    []executedQuery
	ResultQueue []neo4j.EagerResult
	MockResult  neo4j.EagerResult
	Err         error
}

func (m *MockExecutor) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if len(m.ResultQueue) > 0 {
		res := m.ResultQueue[0]
		m.ResultQueue = m.ResultQueue[1:]
		return res, nil
	}
	return m.MockResult, nil
}

func (m *MockExecutor) Close(ctx context.Context) error {
	return nil
}

func records(keys []string, rows ...[]interface{}) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: keys}
	for _, r := range rows {
		res.Records = append(res.Records, &neo4j.Record{Keys: keys, Values: r})
	}
	return res
}

func countResult(n int64) neo4j.EagerResult {
	return records([]string{"count"}, []interface{}{n})
}
