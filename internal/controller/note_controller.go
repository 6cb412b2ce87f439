package controller

import (
	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/serverutils"
	"sticky-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService    service.INoteService
	authMiddleware fiber.Handler
}

func NewNoteController(noteService service.INoteService, authMiddleware fiber.Handler) INoteController {
	return &noteController{noteService: noteService, authMiddleware: authMiddleware}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	// Auth is attached per route so unknown /notes paths still fall through to 404.
	h := r.Group("/notes")
	h.Post("/create", c.authMiddleware, c.Create)
	h.Get("/all", c.authMiddleware, c.List)
	h.Get("/get/:id", c.authMiddleware, c.Show)
	h.Put("/update/:id", c.authMiddleware, c.Update)
	h.Delete("/delete/:id", c.authMiddleware, c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.NoteMessageResponse{
		Message: "Note created successfully",
		Note:    *res,
	})
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.NoteMessageResponse{
		Message: "Note updated successfully",
		Note:    *res,
	})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusOK, "Note deleted successfully")
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListForOwner(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func noteID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("Invalid note id")
	}
	return id, nil
}
