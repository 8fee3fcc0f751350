package handler

import (
	"net/http"
	"strconv"

	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc       *usecase.ProductUsecase
	reviewUC *usecase.ReviewUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, reviewUC *usecase.ReviewUsecase) *ProductHandler {
	return &ProductHandler{uc: uc, reviewUC: reviewUC}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.GET("/products/:id/reviews", h.listReviews)
	e.GET("/categories", h.listCategories)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	q := c.QueryParam("q")
	sort := c.QueryParam("sort")

	var categoryID *int64
	if v := c.QueryParam("category_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		categoryID = &x
	}

	var minPrice *int64
	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *int64
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out, err := h.uc.List(c.Request().Context(), repo.ProductListQuery{
		Page:       page,
		Limit:      limit,
		Q:          q,
		CategoryID: categoryID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       sort,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) listReviews(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	reviews, err := h.reviewUC.ListByProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ProductHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
