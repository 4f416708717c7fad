package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

func newAuthTestRouter(capability entity.Capability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())
	router.DELETE("/protected", RequireCapability(capability), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("DELETE", "/protected", nil)
	if role != "" {
		req.Header.Set(RoleHeader, role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestIdentityRejectsUnknownRole тестирует отказ при отсутствии или
// неизвестном значении заголовка роли
func TestIdentityRejectsUnknownRole(t *testing.T) {
	router := newAuthTestRouter(entity.CapabilityManageBookings)

	tests := []struct {
		name string
		role string
	}{
		{name: "missing header", role: ""},
		{name: "unknown role", role: "admin"},
		{name: "wrong case", role: "OWNER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.role)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

// TestRequireCapability тестирует таблицу прав для обеих ролей
func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		capability entity.Capability
		wantStatus int
	}{
		{name: "owner deletes hotel", role: "owner", capability: entity.CapabilityDeleteHotel, wantStatus: http.StatusOK},
		{name: "owner blocks inventory", role: "owner", capability: entity.CapabilityBlockInventory, wantStatus: http.StatusOK},
		{name: "staff denied hotel delete", role: "staff", capability: entity.CapabilityDeleteHotel, wantStatus: http.StatusForbidden},
		{name: "staff denied hotel management", role: "staff", capability: entity.CapabilityManageHotels, wantStatus: http.StatusForbidden},
		{name: "staff denied inventory block", role: "staff", capability: entity.CapabilityBlockInventory, wantStatus: http.StatusForbidden},
		{name: "staff manages bookings", role: "staff", capability: entity.CapabilityManageBookings, wantStatus: http.StatusOK},
		{name: "staff manages payments", role: "staff", capability: entity.CapabilityManagePayments, wantStatus: http.StatusOK},
		{name: "staff views reports", role: "staff", capability: entity.CapabilityViewReports, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.capability)
			w := doRequest(router, tt.role)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestRoleFromContext тестирует извлечение роли после Identity
func TestRoleFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())

	var captured entity.Role
	var found bool
	router.GET("/whoami", func(c *gin.Context) {
		captured, found = RoleFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(RoleHeader, "staff")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, found)
	assert.Equal(t, entity.RoleStaff, captured)
}
