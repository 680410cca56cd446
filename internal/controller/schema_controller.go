package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/database/metadata"
	"github.com/kecicz/activerecord-fb-adapter/internal/middleware"
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
	"github.com/kecicz/activerecord-fb-adapter/pkg/response"
)

// CatalogReader is the read side the schema endpoints need
type CatalogReader interface {
	Tables(ctx context.Context) ([]string, error)
	Views(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]model.ColumnDescriptor, error)
	Indexes(ctx context.Context, table string) ([]model.IndexDescriptor, error)
	PrimaryKey(ctx context.Context, table string) (string, bool, error)
	Table(ctx context.Context, table string) (*metadata.TableSchema, error)
	Snapshot(ctx context.Context) (*metadata.DataSourceSchema, error)
}

type SchemaController struct {
	reader CatalogReader
	logger logrus.FieldLogger
}

func NewSchemaController(reader CatalogReader, logger logrus.FieldLogger) *SchemaController {
	return &SchemaController{
		reader: reader,
		logger: logger,
	}
}

// RegisterRoutes mounts the read-only catalog endpoints
func (sc *SchemaController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/schema", sc.GetSchema)
	api.GET("/views", sc.ListViews)

	tables := api.Group("/tables")
	{
		tables.GET("", sc.ListTables)
		tables.GET("/:name", sc.GetTable)
		tables.GET("/:name/columns", sc.GetColumns)
		tables.GET("/:name/indexes", sc.GetIndexes)
		tables.GET("/:name/primary-key", sc.GetPrimaryKey)
	}
}

// ListTables godoc
// @Summary List user tables
// @Tags schema
// @Produce json
// @Success 200 {object} response.StandardResponse
// @Router /api/v1/tables [get]
func (sc *SchemaController) ListTables(c *gin.Context) {
	tables, err := sc.reader.Tables(c.Request.Context())
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(tables, middleware.GetCorrelationID(c)))
}

// ListViews godoc
// @Summary List user views
// @Tags schema
// @Produce json
// @Success 200 {object} response.StandardResponse
// @Router /api/v1/views [get]
func (sc *SchemaController) ListViews(c *gin.Context) {
	views, err := sc.reader.Views(c.Request.Context())
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(views, middleware.GetCorrelationID(c)))
}

// GetTable godoc
// @Summary Get columns, indexes and primary key of a table
// @Tags schema
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} response.StandardResponse{data=metadata.TableSchema}
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/tables/{name} [get]
func (sc *SchemaController) GetTable(c *gin.Context) {
	name := c.Param("name")

	table, err := sc.reader.Table(c.Request.Context(), name)
	if err != nil {
		sc.fail(c, err)
		return
	}
	if len(table.Columns) == 0 {
		sc.fail(c, utils.NewNotFoundError("table "+name))
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(table, middleware.GetCorrelationID(c)))
}

// GetColumns godoc
// @Summary Get the columns of a table in declaration order
// @Tags schema
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/tables/{name}/columns [get]
func (sc *SchemaController) GetColumns(c *gin.Context) {
	name := c.Param("name")

	columns, err := sc.reader.Columns(c.Request.Context(), name)
	if err != nil {
		sc.fail(c, err)
		return
	}
	if len(columns) == 0 {
		sc.fail(c, utils.NewNotFoundError("table "+name))
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(columns, middleware.GetCorrelationID(c)))
}

// GetIndexes godoc
// @Summary Get the user indexes of a table
// @Tags schema
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} response.StandardResponse
// @Router /api/v1/tables/{name}/indexes [get]
func (sc *SchemaController) GetIndexes(c *gin.Context) {
	indexes, err := sc.reader.Indexes(c.Request.Context(), c.Param("name"))
	if err != nil {
		sc.fail(c, err)
		return
	}
	if indexes == nil {
		indexes = []model.IndexDescriptor{}
	}
	c.JSON(http.StatusOK, response.SuccessResponse(indexes, middleware.GetCorrelationID(c)))
}

// GetPrimaryKey godoc
// @Summary Get the first primary key column of a table
// @Tags schema
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} response.StandardResponse
// @Failure 404 {object} response.StandardResponse
// @Router /api/v1/tables/{name}/primary-key [get]
func (sc *SchemaController) GetPrimaryKey(c *gin.Context) {
	name := c.Param("name")

	pk, ok, err := sc.reader.PrimaryKey(c.Request.Context(), name)
	if err != nil {
		sc.fail(c, err)
		return
	}
	if !ok {
		sc.fail(c, utils.NewNotFoundError("primary key of "+name))
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(gin.H{"table": name, "column": pk}, middleware.GetCorrelationID(c)))
}

// GetSchema godoc
// @Summary Read every table with its columns, indexes and primary key
// @Tags schema
// @Produce json
// @Success 200 {object} response.StandardResponse{data=metadata.DataSourceSchema}
// @Router /api/v1/schema [get]
func (sc *SchemaController) GetSchema(c *gin.Context) {
	schema, err := sc.reader.Snapshot(c.Request.Context())
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse(schema, middleware.GetCorrelationID(c)))
}

func (sc *SchemaController) fail(c *gin.Context, err error) {
	status, body := response.FromError(err, middleware.GetCorrelationID(c))
	if status >= http.StatusInternalServerError {
		sc.logger.WithError(err).WithField(middleware.CorrelationIDKey, body.CorrelationID).Error("catalog read failed")
	}
	c.JSON(status, body)
}
