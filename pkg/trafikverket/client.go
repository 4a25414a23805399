// Package trafikverket is a client for the Trafikverket open traffic
// information API, an XML-over-HTTP query protocol covering train stations
// and departures, ferry routes and departures, road weather stations,
// traffic cameras and deviations.
package trafikverket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Client communicates with the Trafikverket API. It holds no mutable state
// between calls and is safe for concurrent use; connection reuse and
// timeouts are the underlying http.Client's business.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a Client against the default endpoint.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// NewClientWithHTTP creates a Client with a caller-supplied http.Client and
// endpoint. An empty endpoint means the default.
func NewClientWithHTTP(apiKey, endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Query describes one request against the API.
type Query struct {
	ObjectType    string
	SchemaVersion string
	Namespace     string // only used by some object types
	Includes      []string
	Filters       []Filter // siblings under FILTER, implicitly ANDed
	Limit         int      // 0 means no limit attribute
	Sort          []FieldSort
}

// buildRequest assembles the request envelope:
//
//	<REQUEST>
//	  <LOGIN authenticationkey="..."/>
//	  <QUERY objecttype="..." schemaversion="..." [namespace] [limit] [orderby]>
//	    <INCLUDE>Field</INCLUDE>...
//	    <FILTER>...</FILTER>
//	  </QUERY>
//	</REQUEST>
func (c *Client) buildRequest(q Query) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("REQUEST")
	login := root.CreateElement("LOGIN")
	login.CreateAttr("authenticationkey", c.apiKey)
	query := root.CreateElement("QUERY")
	query.CreateAttr("objecttype", q.ObjectType)
	query.CreateAttr("schemaversion", q.SchemaVersion)
	if q.Namespace != "" {
		query.CreateAttr("namespace", q.Namespace)
	}
	if q.Limit > 0 {
		query.CreateAttr("limit", strconv.Itoa(q.Limit))
	}
	if len(q.Sort) > 0 {
		query.CreateAttr("orderby", joinSorts(q.Sort))
	}
	for _, include := range q.Includes {
		query.CreateElement("INCLUDE").SetText(include)
	}
	filter := query.CreateElement("FILTER")
	for _, f := range q.Filters {
		f.appendTo(filter)
	}
	return doc
}

// MakeRequest sends the query and returns the matched XML subtrees for the
// requested object type, in document order. Zero, one or many elements is
// the caller's concern; an embedded error payload is classified here.
func (c *Client) MakeRequest(ctx context.Context, q Query) ([]*etree.Element, error) {
	doc := c.buildRequest(q)
	body, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serialize request: %w", err)
	}
	c.logger.Debug("sending query", "objecttype", q.ObjectType, "schemaversion", q.SchemaVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("response received", "status", resp.StatusCode, "bytes", len(content))

	respDoc := etree.NewDocument()
	if err := respDoc.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if errNodes := respDoc.FindElements("/RESPONSE/RESULT/ERROR"); len(errNodes) > 0 {
		helper := NewNodeHelper(errNodes[0])
		source, _ := helper.Text("SOURCE")
		message, _ := helper.Text("MESSAGE")
		src, msg := "", ""
		if source != nil {
			src = *source
		}
		if message != nil {
			msg = *message
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &InvalidAuthError{Source: src, Message: msg, Status: resp.StatusCode}
		}
		return nil, &APIError{Source: src, Message: msg, Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &InvalidAuthError{Status: resp.StatusCode}
		}
		return nil, &APIError{Status: resp.StatusCode}
	}

	return respDoc.FindElements("/RESPONSE/RESULT/" + q.ObjectType), nil
}
