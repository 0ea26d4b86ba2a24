package errors

import "net/http"

var (
	ErrAreaNotFound = New(
		"AREA_NOT_FOUND",
		"Operational area not found",
		http.StatusNotFound,
	)

	ErrBoundaryNotFound = New(
		"BOUNDARY_NOT_FOUND",
		"Administrative boundary not found",
		http.StatusNotFound,
	)

	ErrShopNotFound = New(
		"SHOP_NOT_FOUND",
		"Shop not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrInvalidBoundingBox = New(
		"INVALID_BBOX",
		"Invalid bounding box",
		http.StatusBadRequest,
	)

	ErrInvalidSortMode = New(
		"INVALID_SORT",
		"Unknown sort mode",
		http.StatusBadRequest,
	)

	ErrSlugConflict = New(
		"SLUG_CONFLICT",
		"Slug already taken within the operational area",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
