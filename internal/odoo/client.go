// internal/odoo/client.go
package odoo

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"sync"

	"github.com/kolo/xmlrpc"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/config"
)

// Record is an untyped field→value mapping as returned by Odoo. No schema is
// assumed beyond the fields explicitly requested.
type Record = map[string]any

// Domain is an Odoo search filter: a list of (field, operator, value)
// conditions.
type Domain []any

// Condition builds a single domain condition tuple.
func Condition(field, op string, value any) []any {
	return []any{field, op, value}
}

// InvoiceLine is one line of an invoice to be created in Odoo.
type InvoiceLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	PriceUnit float64 `json:"price_unit"`
}

// Client talks XML-RPC to an Odoo instance. It authenticates once at
// construction and holds a single session uid, so one instance belongs to one
// pipeline run or one request — it is not meant to be shared.
type Client struct {
	url    string
	db     string
	user   string
	apiKey string
	uid    int

	common    *xmlrpc.Client
	object    *xmlrpc.Client
	commonRec *responseRecorder
	objectRec *responseRecorder
}

// responseRecorder captures the last HTTP status and headers seen on an
// endpoint so protocol-level failures can be reported with their details.
type responseRecorder struct {
	base http.RoundTripper

	mu      sync.Mutex
	status  int
	headers http.Header
}

func (r *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.base.RoundTrip(req)
	r.mu.Lock()
	defer r.mu.Unlock()
	if resp != nil {
		r.status = resp.StatusCode
		r.headers = resp.Header.Clone()
	} else {
		r.status = 0
		r.headers = nil
	}
	return resp, err
}

func (r *responseRecorder) snapshot() (int, http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.headers
}

// NewClient dials the Odoo common endpoint and authenticates. It fails fast
// with ErrAuthenticationFailed when Odoo returns no uid.
func NewClient(cfg *config.Config) (*Client, error) {
	// https is required even if port 443 is specified
	baseURL := fmt.Sprintf("https://%s:%s/xmlrpc/2", cfg.OdooHost, cfg.OdooPort)
	return newClient(baseURL, cfg.OdooDatabase, cfg.OdooUser, cfg.OdooAPIKey)
}

func newClient(baseURL, db, user, apiKey string) (*Client, error) {
	c := &Client{
		url:       baseURL,
		db:        db,
		user:      user,
		apiKey:    apiKey,
		commonRec: &responseRecorder{base: http.DefaultTransport},
		objectRec: &responseRecorder{base: http.DefaultTransport},
	}

	var err error
	c.common, err = xmlrpc.NewClient(baseURL+"/common", c.commonRec)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}
	c.object, err = xmlrpc.NewClient(baseURL+"/object", c.objectRec)
	if err != nil {
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	var raw any
	if err := c.call(c.common, c.commonRec, baseURL+"/common", "authenticate",
		[]any{db, user, apiKey, map[string]any{}}, &raw); err != nil {
		return nil, err
	}

	// Odoo answers `false` on bad credentials instead of faulting.
	switch v := raw.(type) {
	case int64:
		c.uid = int(v)
	case int:
		c.uid = v
	default:
		return nil, ErrAuthenticationFailed
	}
	if c.uid == 0 {
		return nil, ErrAuthenticationFailed
	}

	log.Printf("✅ [ODOO] Authenticated, UID: %d", c.uid)
	return c, nil
}

// UID returns the session identifier obtained at construction.
func (c *Client) UID() int {
	return c.uid
}

// Version reports the Odoo server version info.
func (c *Client) Version() (Record, error) {
	var out Record
	err := c.call(c.common, c.commonRec, c.url+"/common", "version", []any{}, &out)
	return out, err
}

// call is the single boundary every RPC goes through. Failures are
// classified into exactly two kinds: *FaultError when Odoo rejected the call,
// *ProtocolError for HTTP/connection-layer trouble. Anything else is logged
// and propagated as-is. No retries here — retry policy belongs to the caller.
func (c *Client) call(endpoint *xmlrpc.Client, rec *responseRecorder, endpointURL, method string, args []any, reply any) error {
	err := endpoint.Call(method, args, reply)
	if err == nil {
		return nil
	}

	if ferr := asFault(err); ferr != nil {
		log.Printf("❌ [ODOO] Fault on %s: %d - %s", method, ferr.Code, ferr.Message)
		return ferr
	}

	status, headers := rec.snapshot()
	var netErr net.Error
	var urlErr *url.Error
	if status != 0 && status != http.StatusOK || errors.As(err, &netErr) || errors.As(err, &urlErr) {
		perr := &ProtocolError{
			URL:     endpointURL,
			Code:    status,
			Message: err.Error(),
			Headers: headers,
		}
		log.Printf("❌ [ODOO] Protocol error on %s: %d %s", method, perr.Code, perr.Message)
		return perr
	}

	log.Printf("❌ [ODOO] Unexpected error on %s: %v", method, err)
	return err
}

// faultPattern matches the string form xml-rpc faults take after passing
// through the net/rpc plumbing ("Fault(code): message").
var faultPattern = regexp.MustCompile(`^Fault\((-?\d+)\): (.*)$`)

func asFault(err error) *FaultError {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return &FaultError{Code: fault.Code, Message: fault.String}
	}
	if m := faultPattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return &FaultError{Code: code, Message: m[2]}
	}
	return nil
}

func (c *Client) executeKw(model, method string, args []any, kwargs map[string]any, reply any) error {
	callArgs := []any{c.db, c.uid, c.apiKey, model, method, args}
	if kwargs != nil {
		callArgs = append(callArgs, kwargs)
	}
	return c.call(c.object, c.objectRec, c.url+"/object", "execute_kw", callArgs, reply)
}

// GetData runs a filtered, field-projected, paginated search_read.
func (c *Client) GetData(model string, fields []string, domain Domain, limit, offset int) ([]Record, error) {
	if domain == nil {
		domain = Domain{}
	}
	var out []Record
	err := c.executeKw(model, "search_read", []any{[]any(domain)}, map[string]any{
		"fields": fields,
		"limit":  limit,
		"offset": offset,
	}, &out)
	return out, err
}

// CreateData creates a record and returns its Odoo id.
func (c *Client) CreateData(model string, values map[string]any) (int, error) {
	var id int64
	err := c.executeKw(model, "create", []any{values}, nil, &id)
	return int(id), err
}

// UpdateData writes values onto an existing record.
func (c *Client) UpdateData(model string, id int, values map[string]any) (bool, error) {
	var ok bool
	err := c.executeKw(model, "write", []any{[]any{id}, values}, nil, &ok)
	return ok, err
}

// DeleteData unlinks a record.
func (c *Client) DeleteData(model string, id int) (bool, error) {
	var ok bool
	err := c.executeKw(model, "unlink", []any{[]any{id}}, nil, &ok)
	return ok, err
}

// GetCount runs a search_count with the given domain.
func (c *Client) GetCount(model string, domain Domain) (int, error) {
	if domain == nil {
		domain = Domain{}
	}
	var count int64
	err := c.executeKw(model, "search_count", []any{[]any(domain)}, nil, &count)
	return int(count), err
}

var contactFields = []string{"id", "name", "email", "display_name", "company_id"}

// GetContacts returns companies when isCompany is true, persons otherwise.
func (c *Client) GetContacts(isCompany bool, limit, offset int) ([]Record, error) {
	return c.GetData(
		"res.partner",
		contactFields,
		Domain{Condition("is_company", "=", isCompany)},
		limit,
		offset,
	)
}

// GetPartners lists res.partner records with an arbitrary domain.
func (c *Client) GetPartners(domain Domain, limit, offset int) ([]Record, error) {
	return c.GetData("res.partner", contactFields, domain, limit, offset)
}

// CreateContact creates a company record and a person linked to it via
// parent_id, returning the person's Odoo id.
func (c *Client) CreateContact(name, email, companyName string) (int, error) {
	companyID, err := c.CreateData("res.partner", map[string]any{
		"name":       companyName,
		"is_company": true,
	})
	if err != nil {
		return 0, err
	}
	return c.CreateData("res.partner", map[string]any{
		"name":       name,
		"email":      email,
		"is_company": false,
		"parent_id":  companyID,
	})
}

// GetInvoices lists account.move records; the default domain restricts to
// customer invoices (move_type = out_invoice).
func (c *Client) GetInvoices(domain Domain, limit, offset int) ([]Record, error) {
	if domain == nil {
		domain = Domain{Condition("move_type", "=", "out_invoice")}
	}
	return c.GetData(
		"account.move",
		[]string{"id", "name", "partner_id", "invoice_date", "amount_total", "state", "move_type"},
		domain,
		limit,
		offset,
	)
}

// CreateInvoice creates an account.move with its lines in the nested
// (0, 0, values) command format Odoo expects.
func (c *Client) CreateInvoice(partnerID int, lines []InvoiceLine, moveType string) (int, error) {
	if moveType == "" {
		moveType = "out_invoice"
	}
	lineCommands := make([]any, 0, len(lines))
	for _, line := range lines {
		lineCommands = append(lineCommands, []any{0, 0, map[string]any{
			"name":       line.Name,
			"quantity":   line.Quantity,
			"price_unit": line.PriceUnit,
		}})
	}
	return c.CreateData("account.move", map[string]any{
		"partner_id":       partnerID,
		"move_type":        moveType,
		"invoice_line_ids": lineCommands,
	})
}
