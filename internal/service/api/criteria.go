package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"woyofal/internal/model"
	"woyofal/internal/service/maxit"

	"github.com/gin-gonic/gin"
)

const (
	maxBodySize      = 1 << 20
	maxMultipartSize = 1 << 20
)

// readCriteria берёт критерии из первого непустого источника: query string,
// затем тело формы, затем JSON-тело. Источники не смешиваются.
func readCriteria(c *gin.Context) model.SearchCriteria {
	if q := c.Request.URL.Query(); len(q) > 0 {
		return criteriaFrom(flatten(q))
	}

	if err := c.Request.ParseMultipartForm(maxMultipartSize); err == nil || errors.Is(err, http.ErrNotMultipart) {
		if len(c.Request.PostForm) > 0 {
			return criteriaFrom(flatten(c.Request.PostForm))
		}
	}

	if c.Request.Body == nil {
		return model.SearchCriteria{}
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return model.SearchCriteria{}
	}
	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return model.SearchCriteria{}
	}
	return criteriaFrom(input)
}

func flatten(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k := range values {
		out[k] = values.Get(k)
	}
	return out
}

func criteriaFrom(input map[string]any) model.SearchCriteria {
	c := model.SearchCriteria{
		Number:      field(input, "numero"),
		ClientName:  field(input, "client_nom"),
		ClientPhone: field(input, "client_telephone"),
	}
	if v, ok := input["actif"]; ok && v != nil {
		if s, isString := v.(string); !isString || strings.TrimSpace(s) != "" {
			active := maxit.Truthy(v)
			c.Active = &active
		}
	}
	return c.Clean()
}

func field(input map[string]any, key string) string {
	switch v := input[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
