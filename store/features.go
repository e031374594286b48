package store

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultPageLimit applies when a request asks for a page without saying
// how large pages are.
const defaultPageLimit = 100

// control parameters are stripped from the filter stage
var controlParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// comparison operators accepted inside bracket keys, e.g. price[gte]=500
var comparisonOps = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
}

// Features translates flat request query parameters into the pieces of a
// mongo read operation, applied in a fixed order:
// filter -> sort -> field selection -> pagination.
//
// It is a pure translation, no I/O happens here; execution is up to the
// caller holding the collection.
type Features struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Skip       int64
	Limit      int64

	paginated bool
}

// NewFeatures parses request query parameters. Unknown bracket operators,
// non-numeric or non-positive page/limit values are rejected with an
// ErrInvalidQuery.
func NewFeatures(params url.Values) (*Features, error) {
	f := &Features{
		Filter: bson.M{},
	}

	if err := f.parseFilter(params); err != nil {
		return nil, err
	}
	f.parseSort(params.Get("sort"))
	f.parseFields(params.Get("fields"))
	if err := f.parsePagination(params.Get("page"), params.Get("limit")); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Features) parseFilter(params url.Values) error {
	for key := range params {
		if controlParams[key] {
			continue
		}

		value := parseFilterValue(params.Get(key))

		field, op, ok := splitBracketKey(key)
		if !ok {
			f.Filter[key] = value
			continue
		}

		mongoOp, known := comparisonOps[op]
		if !known {
			return &ErrInvalidQuery{fmt.Sprintf("unsupported filter operator %q", op)}
		}

		cond, ok := f.Filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			f.Filter[field] = cond
		}
		cond[mongoOp] = value
	}
	return nil
}

// splitBracketKey splits "price[gte]" into ("price", "gte", true).
func splitBracketKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// parseFilterValue coerces query string values into the types stored in
// mongo so that comparisons work on numbers and booleans.
func parseFilterValue(s string) interface{} {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func (f *Features) parseSort(sortParam string) {
	if sortParam == "" {
		f.Sort = bson.D{{Key: "createdAt", Value: -1}}
		return
	}

	for _, field := range strings.Split(sortParam, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		f.Sort = append(f.Sort, bson.E{Key: field, Value: order})
	}
}

func (f *Features) parseFields(fieldsParam string) {
	if fieldsParam == "" {
		f.Projection = bson.M{"__v": 0}
		return
	}

	f.Projection = bson.M{}
	for _, field := range strings.Split(fieldsParam, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f.Projection[field] = 1
	}
}

func (f *Features) parsePagination(pageParam, limitParam string) error {
	if pageParam == "" && limitParam == "" {
		return nil
	}

	page := int64(1)
	limit := int64(defaultPageLimit)

	if pageParam != "" {
		n, err := strconv.ParseInt(pageParam, 10, 64)
		if err != nil || n < 1 {
			return &ErrInvalidQuery{fmt.Sprintf("invalid page %q", pageParam)}
		}
		page = n
	}
	if limitParam != "" {
		n, err := strconv.ParseInt(limitParam, 10, 64)
		if err != nil || n < 1 {
			return &ErrInvalidQuery{fmt.Sprintf("invalid limit %q", limitParam)}
		}
		limit = n
	}

	f.Skip = (page - 1) * limit
	f.Limit = limit
	f.paginated = true
	return nil
}

// FindOptions assembles the sort, projection and pagination stages for a
// plain find.
func (f *Features) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(f.Sort).
		SetProjection(f.Projection)
	if f.paginated {
		opts = opts.SetSkip(f.Skip).SetLimit(f.Limit)
	}
	return opts
}

// Pipeline assembles the equivalent aggregation stages for reads that
// need $lookup population. The given filter replaces f.Filter so that
// callers can compose ambient scopes into the match stage; extra stages
// run between pagination and projection.
func (f *Features) Pipeline(filter bson.M, extra ...bson.M) []bson.M {
	stages := []bson.M{
		{"$match": filter},
		{"$sort": f.Sort},
	}
	if f.paginated {
		stages = append(stages,
			bson.M{"$skip": f.Skip},
			bson.M{"$limit": f.Limit},
		)
	}
	stages = append(stages, extra...)
	stages = append(stages, bson.M{"$project": f.Projection})
	return stages
}
