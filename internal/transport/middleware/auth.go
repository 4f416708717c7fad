package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

// Заголовок с ролью, проставляется внешним шлюзом аутентификации
const RoleHeader = "X-User-Role"

const roleContextKey = "userRole"

// capabilities задает декларативную таблицу прав: роль -> доступные операции.
// Владелец умеет все, персонал не удаляет отели и не блокирует фонд
var capabilities = map[entity.Role]map[entity.Capability]bool{
	entity.RoleOwner: {
		entity.CapabilityManageHotels:     true,
		entity.CapabilityDeleteHotel:      true,
		entity.CapabilityManageRooms:      true,
		entity.CapabilityManageGuests:     true,
		entity.CapabilityManageBookings:   true,
		entity.CapabilityManagePayments:   true,
		entity.CapabilityManageAgreements: true,
		entity.CapabilityBlockInventory:   true,
		entity.CapabilityViewReports:      true,
	},
	entity.RoleStaff: {
		entity.CapabilityManageRooms:      true,
		entity.CapabilityManageGuests:     true,
		entity.CapabilityManageBookings:   true,
		entity.CapabilityManagePayments:   true,
		entity.CapabilityManageAgreements: true,
		entity.CapabilityViewReports:      true,
	},
}

// Identity читает роль из доверенного заголовка и кладет ее в контекст запроса
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetHeader(RoleHeader))
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "unknown or missing role",
			})
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequireCapability пропускает запрос только при наличии права у роли
func RequireCapability(capability entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(roleContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "identity is not resolved",
			})
			return
		}

		if !capabilities[role.(entity.Role)][capability] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": entity.ErrForbidden.Error(),
			})
			return
		}

		c.Next()
	}
}

// RoleFromContext возвращает роль текущего запроса
func RoleFromContext(c *gin.Context) (entity.Role, bool) {
	value, ok := c.Get(roleContextKey)
	if !ok {
		return "", false
	}
	return value.(entity.Role), true
}
