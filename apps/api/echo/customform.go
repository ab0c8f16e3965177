package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/customform/core/form"
)

type formApi struct {
	service *form.Service
}

func registerFormAPI(g *echo.Group, svc *form.Service) {
	api := formApi{service: svc}

	fg := g.Group("/forms")
	fg.GET("", api.formQuery)
	fg.POST("", api.formCreate)
	fg.GET("/categories", api.categoryQuery)

	// detail endpoints
	dg := fg.Group("/:id")
	dg.GET("", api.formRetrieve)
	dg.PUT("", api.formUpdate)
	dg.DELETE("", api.formDestroy)
	dg.POST("/submissions", api.formSubmit)
}

// Handlers

func (api *formApi) formCreate(ctx echo.Context) error {
	data := new(form.NewForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	frm, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, frm)
}

func (api *formApi) formQuery(ctx echo.Context) error {
	forms, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, forms)
}

func (api *formApi) categoryQuery(ctx echo.Context) error {
	cats, err := api.service.QueryCategories()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cats)
}

// formRetrieve serves the form definition a viewer renders: the instance
// settings plus the fields visible to submitters, in catalog order.
func (api *formApi) formRetrieve(ctx echo.Context) error {
	frm, err := api.getForm(ctx)
	if err != nil {
		return err
	}

	catalog, err := api.service.ResolveCatalog(frm)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, FormView{
		Form:   frm,
		Fields: form.ViewerFields(catalog),
	})
}

func (api *formApi) formUpdate(ctx echo.Context) error {
	frm, err := api.getForm(ctx)
	if err != nil {
		return err
	}

	data := new(form.UpdateForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	frm, err = api.service.Update(frm.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, frm)
}

func (api *formApi) formDestroy(ctx echo.Context) error {
	frm, err := api.getForm(ctx)
	if err != nil {
		return err
	}
	if err := api.service.Delete(frm.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// formSubmit handles one raw form post. Delivery failures never surface
// here; a successful post always reaches the feedback state.
func (api *formApi) formSubmit(ctx echo.Context) error {
	id, err := api.getID(ctx)
	if err != nil {
		return err
	}

	raw := make(form.RawSubmission)
	if err := ctx.Bind(&raw); err != nil {
		return err
	}

	res, err := api.service.Submit(ctx.Request().Context(), id, raw)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// helpers

func (api *formApi) getID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

func (api *formApi) getForm(ctx echo.Context) (form.Form, error) {
	id, err := api.getID(ctx)
	if err != nil {
		return form.Form{}, err
	}
	return api.service.GetByID(id)
}
