package core

import (
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock for the core Logger port
type MockLogger struct {
	mock.Mock
}

// SetLevel mocks setting the minimum log level
func (m *MockLogger) SetLevel(level coreport.LogLevel) {
	m.Called(level)
}

// GetLevel mocks getting the current log level
func (m *MockLogger) GetLevel() coreport.LogLevel {
	args := m.Called()
	return args.Get(0).(coreport.LogLevel)
}

// Debug mocks debug logging
func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Info mocks info logging
func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Warn mocks warn logging
func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Error mocks error logging
func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Flush mocks flushing buffered logs
func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
