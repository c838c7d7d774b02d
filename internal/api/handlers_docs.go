package api

import "github.com/gofiber/fiber/v2"

type docInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Type  string `json:"type"`
}

func (handler *Handler) CreateDoc(c *fiber.Ctx) error {
	var input docInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	doc, err := handler.docs.Create(input.Title, input.Text, input.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (handler *Handler) ListDocs(c *fiber.Ctx) error {
	docs, err := handler.docs.List(c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"docs": docs, "count": len(docs)})
}

func (handler *Handler) GetDoc(c *fiber.Ctx) error {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	doc, err := handler.docs.Get(docID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

func (handler *Handler) UpdateDoc(c *fiber.Ctx) error {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var input docInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	doc, err := handler.docs.Update(docID, input.Title, input.Text, input.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

func (handler *Handler) DeleteDoc(c *fiber.Ctx) error {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.docs.Delete(docID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
