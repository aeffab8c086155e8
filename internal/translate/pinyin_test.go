package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinyinProviderTranslateBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "提交$取消", r.URL.Query().Get("text"))
		assert.Equal(t, "$", r.URL.Query().Get("sep"))
		w.Write([]byte("ti jiao$qu xiao"))
	}))
	defer srv.Close()

	p := &PinyinProvider{Endpoint: srv.URL, client: http.DefaultClient}
	tokens, err := p.TranslateBatch(context.Background(), []string{"提交", "取消"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ti jiao", "qu xiao"}, tokens)
}

func TestPinyinProviderTranslateBatchEmpty(t *testing.T) {
	p := NewPinyinProvider()
	tokens, err := p.TranslateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestPinyinProviderTranslateBatchTokenCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ti jiao"))
	}))
	defer srv.Close()

	p := &PinyinProvider{Endpoint: srv.URL, client: http.DefaultClient}
	_, err := p.TranslateBatch(context.Background(), []string{"提交", "取消"})
	assert.Error(t, err)
}

func TestPinyinProviderTranslateBatchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &PinyinProvider{Endpoint: srv.URL, client: http.DefaultClient}
	_, err := p.TranslateBatch(context.Background(), []string{"提交"})
	assert.Error(t, err)
}
