package echoapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// crudService is implemented by every entity service exposed as a REST resource.
type crudService[T, F, N, U any] interface {
	Create(ctx context.Context, data N) (T, error)
	Query(ctx context.Context, filter *F, params core.ListParams) ([]T, int, error)
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, data U) (T, error)
	Delete(ctx context.Context, ids ...string) error
}

// filterBinder is a pointer to a filter that reads itself from the query string.
type filterBinder[F any] interface {
	*F
	Bind(values url.Values) error
}

type crudApi[T, F, N, U any, PF filterBinder[F]] struct {
	svc         crudService[T, F, N, U]
	orderFields []string
}

// registerCRUD mounts list, create, retrieve, update, delete and bulk delete on g.
func registerCRUD[T, F, N, U any, PF filterBinder[F]](g *echo.Group, svc crudService[T, F, N, U], orderFields []string) {
	api := crudApi[T, F, N, U, PF]{svc: svc, orderFields: orderFields}

	g.GET("", api.query)
	g.POST("", api.create)
	g.DELETE("", api.destroyMultiple)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api crudApi[T, F, N, U, PF]) query(ctx echo.Context) error {
	filter := PF(new(F))
	if err := filter.Bind(ctx.QueryParams()); err != nil {
		return err
	}

	rows, total, err := api.svc.Query(ctx.Request().Context(), (*F)(filter), bindListParams(ctx, api.orderFields))
	if err != nil {
		return errors.Wrap(err, "querying")
	}
	if rows == nil {
		rows = []T{}
	}
	return sendList(ctx, rows, total)
}

func (api crudApi[T, F, N, U, PF]) create(ctx echo.Context) error {
	var data N
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding create request")
	}
	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api crudApi[T, F, N, U, PF]) retrieve(ctx echo.Context) error {
	obj, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "retrieving")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api crudApi[T, F, N, U, PF]) update(ctx echo.Context) error {
	var data U
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding update request")
	}
	obj, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api crudApi[T, F, N, U, PF]) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, err := api.svc.Get(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "retrieving")
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api crudApi[T, F, N, U, PF]) destroyMultiple(ctx echo.Context) error {
	var data DestroyMultipleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if len(data.IDs) == 0 {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), data.IDs...); err != nil {
		return errors.Wrap(err, "deleting")
	}
	return ctx.NoContent(http.StatusNoContent)
}
