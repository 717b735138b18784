package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/roster"
	"github.com/sentinel-security/sentinel-console/internal/storage"
)

func TestEmployeesHandler_List(t *testing.T) {
	resolver := storage.NewResolver("https://storage.example.com")
	sync := roster.NewSync(nil, resolver, "employees", testLogger())
	sync.Apply([]domain.Employee{
		{ID: "emp-1", Name: "Jane Smith", Email: "jane@example.com", Role: "Engineer", PhotoURL: "photos/jane.jpg", Active: true},
		{ID: "emp-2", Name: "John Doe", Email: "john@example.com", Role: "Security", Active: true},
	})

	handler := NewEmployeesHandler(sync)
	app := fiber.New()
	app.Get("/employees", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/employees", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result ListEmployeesResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &result))

	require.Len(t, result.Employees, 2)
	assert.Equal(t, "Jane Smith", result.Employees[0].Name)
	assert.Equal(t, "https://storage.example.com/employees/photos/jane.jpg", result.Employees[0].PhotoURL)
}

func TestEmployeesHandler_List_Empty(t *testing.T) {
	resolver := storage.NewResolver("https://storage.example.com")
	sync := roster.NewSync(nil, resolver, "employees", testLogger())

	handler := NewEmployeesHandler(sync)
	app := fiber.New()
	app.Get("/employees", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/employees", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result ListEmployeesResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Empty(t, result.Employees)
}
