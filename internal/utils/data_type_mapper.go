package utils

import (
	"fmt"
	"strings"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

// Firebird RDB$FIELDS.RDB$FIELD_TYPE codes
const (
	fieldTypeSmallint  = 7
	fieldTypeInteger   = 8
	fieldTypeQuad      = 9
	fieldTypeFloat     = 10
	fieldTypeDate      = 12
	fieldTypeTime      = 13
	fieldTypeChar      = 14
	fieldTypeBigint    = 16
	fieldTypeBoolean   = 23
	fieldTypeDouble    = 27
	fieldTypeTimestamp = 35
	fieldTypeVarchar   = 37
	fieldTypeCString   = 40
	fieldTypeBlob      = 261
)

const defaultStringLimit = 255

// NativeType is the native declaration for a portable column kind
type NativeType struct {
	Name  string
	Limit int
}

// DataTypeMapper maps portable column kinds to Firebird types and decodes
// catalog field descriptors back into portable type metadata
type DataTypeMapper struct {
	booleanDomain model.BooleanDomain
}

// NewDataTypeMapper creates a new DataTypeMapper instance
func NewDataTypeMapper(booleanDomain model.BooleanDomain) *DataTypeMapper {
	return &DataTypeMapper{booleanDomain: booleanDomain}
}

// BooleanDomain returns the domain boolean columns are declared with
func (dtm *DataTypeMapper) BooleanDomain() model.BooleanDomain {
	return dtm.booleanDomain
}

// NativeDatabaseTypes returns the mapping from portable kinds to native types
func (dtm *DataTypeMapper) NativeDatabaseTypes() map[model.ColumnKind]NativeType {
	return map[model.ColumnKind]NativeType{
		model.KindPrimaryKey: {Name: "integer not null primary key"},
		model.KindString:     {Name: "varchar", Limit: defaultStringLimit},
		model.KindText:       {Name: "blob sub_type text"},
		model.KindInteger:    {Name: "integer"},
		model.KindFloat:      {Name: "float"},
		model.KindDecimal:    {Name: "decimal"},
		model.KindDateTime:   {Name: "timestamp"},
		model.KindTimestamp:  {Name: "timestamp"},
		model.KindTime:       {Name: "time"},
		model.KindDate:       {Name: "date"},
		model.KindBinary:     {Name: "blob"},
		model.KindBoolean:    {Name: dtm.booleanDomain.Name},
	}
}

// TypeToSQL renders the native type declaration for a column kind
func (dtm *DataTypeMapper) TypeToSQL(kind model.ColumnKind, limit, precision, scale *int) (string, error) {
	switch kind {
	case model.KindInteger:
		return IntegerToSQL(limit)
	case model.KindFloat:
		return FloatToSQL(limit), nil
	}

	native, ok := dtm.NativeDatabaseTypes()[kind]
	if !ok {
		return "", NewUnsupportedFeatureError(fmt.Sprintf("unknown column type %q", kind))
	}

	switch kind {
	case model.KindString:
		n := native.Limit
		if limit != nil {
			n = *limit
		}
		return fmt.Sprintf("%s(%d)", native.Name, n), nil
	case model.KindDecimal:
		if precision == nil {
			return native.Name, nil
		}
		if scale == nil {
			return fmt.Sprintf("%s(%d)", native.Name, *precision), nil
		}
		return fmt.Sprintf("%s(%d,%d)", native.Name, *precision, *scale), nil
	default:
		return native.Name, nil
	}
}

// IntegerToSQL picks the smallest integer type holding limit bytes
func IntegerToSQL(limit *int) (string, error) {
	if limit == nil {
		return "integer", nil
	}
	switch l := *limit; {
	case l >= 1 && l <= 2:
		return "smallint", nil
	case l >= 3 && l <= 4:
		return "integer", nil
	case l >= 5 && l <= 8:
		return "bigint", nil
	default:
		return "", NewUnsupportedLimitError(fmt.Sprintf(
			"No integer type has byte size %d. Use a NUMERIC with PRECISION 0 instead.", l))
	}
}

// FloatToSQL returns double precision only for limits above 4 bytes
func FloatToSQL(limit *int) string {
	if limit == nil || *limit <= 4 {
		return "float"
	}
	return "double precision"
}

// SQLTypeFor renders the declaration of a catalog field the way it reads in DDL
func (dtm *DataTypeMapper) SQLTypeFor(field model.CatalogField) string {
	sqlType := baseTypeName(field.Type, field.SubType)

	switch {
	case strings.HasPrefix(sqlType, "numeric"), strings.HasPrefix(sqlType, "decimal"):
		sqlType += fmt.Sprintf("(%d,%d)", field.Precision, abs(field.Scale))
	case sqlType == "smallint", sqlType == "integer", sqlType == "bigint",
		sqlType == "float", sqlType == "double precision",
		sqlType == "char", sqlType == "varchar":
		sqlType += fmt.Sprintf("(%d)", field.Length)
	case sqlType == "blob" && field.SubType == 1:
		sqlType += " sub_type text"
	}

	return sqlType
}

// Decode turns a catalog field descriptor into portable type metadata
func (dtm *DataTypeMapper) Decode(field model.CatalogField) model.TypeMetadata {
	meta := model.TypeMetadata{SQLType: dtm.SQLTypeFor(field)}

	if dtm.isBooleanDomain(field.Domain) || field.Type == fieldTypeBoolean {
		meta.Kind = model.KindBoolean
		return meta
	}

	switch field.Type {
	case fieldTypeSmallint, fieldTypeInteger, fieldTypeBigint:
		if field.SubType == 1 || field.SubType == 2 {
			meta.Kind = model.KindDecimal
			meta.Precision = field.Precision
			meta.Scale = abs(field.Scale)
			return meta
		}
		meta.Kind = model.KindInteger
		meta.Limit = field.Length
	case fieldTypeFloat:
		meta.Kind = model.KindFloat
		meta.Limit = 4
	case fieldTypeDouble:
		meta.Kind = model.KindFloat
		meta.Limit = 8
	case fieldTypeChar, fieldTypeVarchar, fieldTypeCString:
		meta.Kind = model.KindString
		meta.Limit = field.Length
	case fieldTypeBlob:
		if field.SubType == 1 {
			meta.Kind = model.KindText
		} else {
			meta.Kind = model.KindBinary
		}
	case fieldTypeDate:
		meta.Kind = model.KindDate
	case fieldTypeTime:
		meta.Kind = model.KindTime
	case fieldTypeTimestamp:
		meta.Kind = model.KindDateTime
	case fieldTypeQuad:
		meta.Kind = model.KindInteger
		meta.Limit = 8
	}

	return meta
}

func (dtm *DataTypeMapper) isBooleanDomain(domain string) bool {
	return domain != "" && strings.EqualFold(strings.TrimSpace(domain), dtm.booleanDomain.Name)
}

func baseTypeName(code, subType int) string {
	switch code {
	case fieldTypeSmallint, fieldTypeInteger, fieldTypeBigint:
		switch subType {
		case 1:
			return "numeric"
		case 2:
			return "decimal"
		}
		switch code {
		case fieldTypeSmallint:
			return "smallint"
		case fieldTypeInteger:
			return "integer"
		default:
			return "bigint"
		}
	case fieldTypeQuad:
		return "quad"
	case fieldTypeFloat:
		return "float"
	case fieldTypeDouble:
		return "double precision"
	case fieldTypeDate:
		return "date"
	case fieldTypeTime:
		return "time"
	case fieldTypeTimestamp:
		return "timestamp"
	case fieldTypeChar:
		return "char"
	case fieldTypeVarchar:
		return "varchar"
	case fieldTypeCString:
		return "cstring"
	case fieldTypeBlob:
		return "blob"
	case fieldTypeBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("unknown(%d)", code)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
