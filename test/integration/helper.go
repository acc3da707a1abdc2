//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明:测试辅助工具
// 集成测试直接访问运行中的服务(go run ./cmd/api),
// 使用 go test -tags=integration ./test/integration 执行

const (
	// DefaultBaseURL 服务地址,可以用BOOKCATALOG_BASE_URL覆盖
	DefaultBaseURL = "http://localhost:8080/api/books"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL 图书接口地址
func BaseURL() string {
	if url := os.Getenv("BOOKCATALOG_BASE_URL"); url != "" {
		return url
	}
	return DefaultBaseURL
}

// BookData 图书响应
type BookData struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Content     string  `json:"content"`
	ReleaseDate *string `json:"releaseDate"`
}

// ErrorData 错误响应
type ErrorData struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Result 一次HTTP调用的结果
type Result struct {
	Status int
	Body   []byte
}

// Book 解析单本图书
func (r *Result) Book(t *testing.T) BookData {
	t.Helper()
	var b BookData
	require.NoError(t, json.Unmarshal(r.Body, &b), "解析图书失败: %s", string(r.Body))
	return b
}

// Books 解析图书列表
func (r *Result) Books(t *testing.T) []BookData {
	t.Helper()
	var list []BookData
	require.NoError(t, json.Unmarshal(r.Body, &list), "解析图书列表失败: %s", string(r.Body))
	return list
}

// Error 解析错误响应
func (r *Result) Error(t *testing.T) ErrorData {
	t.Helper()
	var e ErrorData
	require.NoError(t, json.Unmarshal(r.Body, &e), "解析错误响应失败: %s", string(r.Body))
	return e
}

// Do 发送请求
//
// 教学说明:
// - 使用*testing.T参数,可以在失败时立即终止测试
// - data为nil时不发送请求体
func Do(t *testing.T, method, url, contentType string, data interface{}) *Result {
	t.Helper()

	var body io.Reader
	switch v := data.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(v)
	default:
		jsonData, err := json.Marshal(v)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败(服务是否已启动?)")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{Status: resp.StatusCode, Body: respBody}
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string) *Result {
	return Do(t, http.MethodGet, url, "", nil)
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}) *Result {
	return Do(t, http.MethodPost, url, "application/json", data)
}

// UniqueTitle 生成唯一的测试书名,避免重复运行时互相影响
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 新增测试图书并返回响应
func CreateTestBook(t *testing.T, title string) BookData {
	t.Helper()
	result := PostJSON(t, BaseURL(), map[string]interface{}{
		"title":       title,
		"author":      "Integration Tester",
		"content":     "Integration. Lifecycle.",
		"releaseDate": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, result.Status, "新增图书失败: %s", string(result.Body))
	return result.Book(t)
}
