package core

import (
	"context"

	"github.com/agenthands/travelmate/internal/core/model"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

type MockPlaces struct {
	Places []model.Place
	Err    error
	Calls  int
}

func (m *MockPlaces) PopularPlaces(ctx context.Context, destination string) ([]model.Place, error) {
	m.Calls++
	return m.Places, m.Err
}

type MockWiki struct{}

func (MockWiki) Describe(ctx context.Context, name string) (string, error) {
	return name + " is a well known landmark.", nil
}

type MockRegistry struct {
	Names     []string
	AppendErr error
	Appended  []string
}

func (m *MockRegistry) List(ctx context.Context) ([]string, error) {
	return append([]string(nil), m.Names...), nil
}

func (m *MockRegistry) Append(ctx context.Context, name string) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, name)
	m.Names = append(m.Names, name)
	return nil
}
