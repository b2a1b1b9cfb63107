package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/pkg/jwt"
)

// LocalPrincipal clave de c.Locals con el empleado autenticado.
const LocalPrincipal = "principal"

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: msg, Error: code})
}

// AuthMiddleware valida el Bearer Token JWT y deja el access.Principal en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		if claims.Role == "" || !access.ValidRole(claims.Role) {
			return unauthorized(c, "MISSING_ROLE", "el token no tiene un rol válido")
		}
		c.Locals(LocalPrincipal, access.Principal{
			UserID:   claims.UserID,
			Role:     claims.Role,
			BranchID: claims.BranchID,
		})
		return c.Next()
	}
}

// RequireCapability corta con 403 si el rol del token no incluye la capacidad.
// Los casos de uso vuelven a autorizar; esto solo evita trabajo inútil.
func RequireCapability(capability access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.UserID == "" {
			return unauthorized(c, "UNAUTHORIZED", "token inválido")
		}
		if !p.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Response{
				Success: false,
				Message: "el rol " + p.Role + " no tiene permiso " + string(capability),
				Error:   "FORBIDDEN",
			})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el empleado autenticado (vacío si no pasó por AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) access.Principal {
	p, _ := c.Locals(LocalPrincipal).(access.Principal)
	return p
}
