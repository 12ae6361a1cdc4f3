package imagehub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

var testSession = domain.Session{Token: "tok-1", Email: "a@b.co", Name: "Ana", Role: domain.RoleUser}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL+"/")
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient(nil, "http://api.local///")
	assert.Equal(t, "http://api.local", c.BaseURL())
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.co", body.Email)
		assert.Equal(t, "secret1", body.Password)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token":"T","email":"a@b.co","firstName":"Ana","lastName":"Gil","role":"USER"}`)
	})

	res, err := c.Login(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "T", res.Token)
	assert.Equal(t, "Ana Gil", res.Session().Name)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestLogin_RejectedCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Usuario inactivo"}`)
	})

	_, err := c.Login(context.Background(), "a@b.co", "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized), "auth endpoints must not force a logout")

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Usuario inactivo", apiErr.Message)
}

func TestSend_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(nil, url)
	_, err := c.ListImages(context.Background(), testSession, 0, 10)
	assert.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestSend_AuthenticatedStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"401", http.StatusUnauthorized, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrUnauthorized) }},
		{"403", http.StatusForbidden, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrUnauthorized) }},
		{"404", http.StatusNotFound, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrNotFound) }},
		{"500 message", http.StatusInternalServerError, `{"message":"boom"}`, func(t *testing.T, err error) {
			assert.Equal(t, "boom", domain.MessageOf(err, "fallback"))
		}},
		{"400 error field", http.StatusBadRequest, `{"error":"bad size"}`, func(t *testing.T, err error) {
			assert.Equal(t, "bad size", domain.MessageOf(err, "fallback"))
		}},
		{"502 no body", http.StatusBadGateway, "", func(t *testing.T, err error) {
			assert.Equal(t, "fallback", domain.MessageOf(err, "fallback"))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			tc.check(t, c.DeleteImage(context.Background(), testSession, "img-1"))
		})
	}
}

func TestListImages_DecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/images/user/all", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"data":{"content":[
			{"id":"i1","imageName":"cat.png","registrationDate":"2024-03-01T10:00:00","hasTransformation":true}
		],"totalPages":3,"totalElements":21,"number":2}}`)
	})

	page, err := c.ListImages(context.Background(), testSession, 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "cat.png", page.Content[0].ImageName)
	assert.True(t, page.Content[0].HasTransformation)
	assert.Equal(t, "01/03/2024", page.Content[0].RegistrationDate.DateLabel())
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(21), page.TotalElements)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())
}

func TestListImages_MissingDataIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	page, err := c.ListImages(context.Background(), testSession, 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}

func TestUpload_SendsMultipartFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/images/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cat.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("PNGDATA"), data)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.Upload(context.Background(), testSession, domain.UploadFile{
		Name: "cat.png", ContentType: "image/png", Size: 7, Data: []byte("PNGDATA"),
	})
	require.NoError(t, err)
}

func TestTransform_SendsSingleMember(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/images/i1/transform", r.URL.Path)
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Len(t, raw, 1)
		assert.JSONEq(t, `{"width":200,"height":100}`, string(raw["resize"]))
	})

	err := c.Transform(context.Background(), testSession, "i1", domain.TransformRequest{
		Resize: &domain.Resize{Width: 200, Height: 100},
	})
	require.NoError(t, err)
}

func TestDownload_ReadsDisposition(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "transform", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="cat_transform.png"`)
		_, _ = w.Write([]byte{1, 2, 3})
	})

	art, err := c.Download(context.Background(), testSession, "i1", domain.ArtifactTransform)
	require.NoError(t, err)
	assert.Equal(t, "cat_transform.png", art.Filename)
	assert.Equal(t, "image/png", art.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, art.Data)
}

func TestUsers_Endpoints(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users":
			_, _ = io.WriteString(w, `[{"id":7,"firstName":"Ana","email":"a@b.co","role":"ADMIN","active":true},{"id":"u-2","email":"b@b.co","role":"USER"}]`)
		case r.Method == http.MethodPut:
			var raw map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			assert.NotContains(t, raw, "email")
			assert.NotContains(t, raw, "password")
			assert.Equal(t, "Eva", raw["firstName"])
		}
	})
	ctx := context.Background()

	users, err := c.ListUsers(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.UserID("7"), users[0].ID)
	assert.Equal(t, domain.UserID("u-2"), users[1].ID)

	name := "Eva"
	require.NoError(t, c.UpdateUser(ctx, testSession, "7", domain.UserPatch{FirstName: &name}))
	require.NoError(t, c.SetActive(ctx, testSession, "7", false))
	require.NoError(t, c.SetActive(ctx, testSession, "7", true))
	require.NoError(t, c.DeleteUser(ctx, testSession, "7"))

	assert.Equal(t, []string{
		"GET /api/users",
		"PUT /api/users/7",
		"PATCH /api/users/7/deactivate",
		"PATCH /api/users/7/activate",
		"DELETE /api/users/7",
	}, seen)
}
