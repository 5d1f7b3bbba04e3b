// internal/odoo/client_test.go
package odoo

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authOKResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><int>2</int></value></param></params></methodResponse>`

const authFailedResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><boolean>0</boolean></value></param></params></methodResponse>`

const faultResponse = `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>3</int></value></member>
<member><name>faultString</name><value><string>Access Denied</string></value></member>
</struct></value></fault></methodResponse>`

const searchReadResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><struct>
<member><name>id</name><value><int>1</int></value></member>
<member><name>name</name><value><string>A</string></value></member>
<member><name>email</name><value><string>a@x.com</string></value></member>
<member><name>company_id</name><value><boolean>0</boolean></value></member>
</struct></value>
<value><struct>
<member><name>id</name><value><int>2</int></value></member>
<member><name>name</name><value><string>B</string></value></member>
<member><name>email</name><value><string>b@x.com</string></value></member>
<member><name>company_id</name><value><array><data>
<value><int>9</int></value><value><string>Acme</string></value>
</data></array></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`

const createResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><int>55</int></value></param></params></methodResponse>`

const countResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><int>12</int></value></param></params></methodResponse>`

// fakeOdoo serves /xmlrpc/2/common with a successful handshake and delegates
// /xmlrpc/2/object to the given handler.
func fakeOdoo(t *testing.T, objectHandler func(w http.ResponseWriter, body string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		switch {
		case strings.HasSuffix(r.URL.Path, "/common"):
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(authOKResponse))
		case strings.HasSuffix(r.URL.Path, "/object"):
			objectHandler(w, body)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientAuthenticates(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)
	assert.Equal(t, 2, client.UID())
}

func TestNewClientFailsFastOnBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(authFailedResponse))
	}))
	t.Cleanup(srv.Close)

	_, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "wrong-key")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestFaultIsClassifiedAsFaultError(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(faultResponse))
	})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	_, err = client.GetData("res.partner", []string{"id"}, Domain{Condition("bogus", "=", 1)}, 10, 0)
	require.Error(t, err)

	var fault *FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 3, fault.Code)
	assert.Equal(t, "Access Denied", fault.Message)
}

func TestBadStatusIsClassifiedAsProtocolError(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	_, err = client.GetData("res.partner", []string{"id"}, nil, 10, 0)
	require.Error(t, err)

	var protocol *ProtocolError
	require.ErrorAs(t, err, &protocol)
	assert.Equal(t, http.StatusInternalServerError, protocol.Code)
	assert.Contains(t, protocol.URL, "/object")
	assert.NotEmpty(t, protocol.Message)
	assert.NotNil(t, protocol.Headers)
}

func TestConnectionFailureIsClassifiedAsProtocolError(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	srv.Close()

	_, err = client.GetData("res.partner", []string{"id"}, nil, 10, 0)
	require.Error(t, err)

	var protocol *ProtocolError
	assert.ErrorAs(t, err, &protocol)
}

func TestGetDataDecodesRecords(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {
		assert.Contains(t, body, "search_read")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(searchReadResponse))
	})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	records, err := client.GetContacts(false, 100, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A", records[0]["name"])
	assert.Equal(t, false, records[0]["company_id"])

	pair, ok := records[1]["company_id"].([]any)
	require.True(t, ok)
	require.Len(t, pair, 2)
	assert.Equal(t, "Acme", pair[1])
}

func TestCreateDataReturnsExternalID(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {
		assert.Contains(t, body, "<methodName>execute_kw</methodName>")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(createResponse))
	})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	id, err := client.CreateData("res.partner", map[string]any{"name": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, 55, id)
}

func TestGetCount(t *testing.T) {
	srv := fakeOdoo(t, func(w http.ResponseWriter, body string) {
		assert.Contains(t, body, "search_count")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(countResponse))
	})

	client, err := newClient(srv.URL+"/xmlrpc/2", "testdb", "user", "key")
	require.NoError(t, err)

	count, err := client.GetCount("res.partner", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestAsFaultParsesServerErrorStrings(t *testing.T) {
	fault := asFault(errors.New("Fault(2): Invalid domain"))
	require.NotNil(t, fault)
	assert.Equal(t, 2, fault.Code)
	assert.Equal(t, "Invalid domain", fault.Message)

	assert.Nil(t, asFault(errors.New("connection reset by peer")))
}
