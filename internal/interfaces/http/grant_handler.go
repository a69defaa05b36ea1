package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/application/usecase"
	"github.com/jhoicas/grants-api/internal/domain/catalog"
)

// GrantHandler maneja las peticiones HTTP para Grant.
type GrantHandler struct {
	uc *usecase.GrantUseCase
}

// NewGrantHandler construye el handler.
func NewGrantHandler(uc *usecase.GrantUseCase) *GrantHandler {
	return &GrantHandler{uc: uc}
}

// List godoc
// @Summary      Listar convocatorias
// @Description  Más recientes primero. activeOnly (por defecto true) excluye inactivas y vencidas.
// @Tags         grants
// @Produce      json
// @Param        categoryId  query  string  false  "ID de categoría"
// @Param        country     query  string  false  "Subcadena del país"
// @Param        activeOnly  query  bool    false  "Solo abiertas"  default(true)
// @Param        page        query  int     false  "Página (1-based)"  default(1)
// @Param        pageSize    query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.GrantListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/grants [get]
func (h *GrantHandler) List(c *fiber.Ctx) error {
	filter := catalog.GrantFilter{
		CategoryID: c.Query("categoryId"),
		Country:    c.Query("country"),
		ActiveOnly: c.QueryBool("activeOnly", true),
		Now:        h.uc.Now(),
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "list grants", "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener convocatoria
// @Tags         grants
// @Produce      json
// @Param        id   path  string  true  "ID de la convocatoria"
// @Success      200  {object}  dto.GrantResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grants/{id} [get]
func (h *GrantHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "get grant", id)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear convocatoria
// @Tags         grants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GrantRequest  true  "Datos y categoryIds"
// @Success      201   {object}  dto.GrantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/grants [post]
func (h *GrantHandler) Create(c *fiber.Ctx) error {
	var req dto.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.ToInput()
	if err != nil {
		return writeError(c, err, "create grant", "")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "create grant", "")
	}
	c.Location("/api/grants/" + out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar convocatoria (reemplaza el conjunto de categorías)
// @Tags         grants
// @Accept       json
// @Param        id    path  string            true  "ID de la convocatoria"
// @Param        body  body  dto.GrantRequest  true  "Datos, categoryIds y version opcional"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/grants/{id} [put]
func (h *GrantHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := req.ToInput()
	if err != nil {
		return writeError(c, err, "update grant", id)
	}
	if err := h.uc.Update(c.UserContext(), id, in, req.Version); err != nil {
		return writeError(c, err, "update grant", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar convocatoria
// @Tags         grants
// @Param        id   path  string  true  "ID de la convocatoria"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grants/{id} [delete]
func (h *GrantHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "delete grant", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
