//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明:图书模块集成测试
//
// 测试场景覆盖:
// 1. 图书生命周期(新增、查询、替换、删除)
// 2. 请求体校验(415/422)与404
// 3. 检索接口

// TestBookLifecycle 新增 → 查询 → 替换 → 删除
func TestBookLifecycle(t *testing.T) {
	title := UniqueTitle("Lifecycle")
	created := CreateTestBook(t, title)
	bookURL := fmt.Sprintf("%s/%d", BaseURL(), created.ID)

	t.Run("新增后可以查询", func(t *testing.T) {
		result := GetJSON(t, bookURL)
		require.Equal(t, http.StatusOK, result.Status)

		got := result.Book(t)
		assert.Equal(t, title, got.Title)
		require.NotNil(t, got.ReleaseDate)
		assert.Equal(t, "2024-01-15", *got.ReleaseDate)
		t.Logf("✓ 新增成功,图书ID: %d", created.ID)
	})

	t.Run("再次新增ID递增", func(t *testing.T) {
		next := CreateTestBook(t, UniqueTitle("Lifecycle-next"))
		assert.Greater(t, next.ID, created.ID)

		result := Do(t, http.MethodDelete, fmt.Sprintf("%s/%d", BaseURL(), next.ID), "", nil)
		assert.Equal(t, http.StatusNoContent, result.Status)
	})

	t.Run("按标题检索", func(t *testing.T) {
		result := GetJSON(t, BaseURL()+"/findTitle?title="+url.QueryEscape(title))
		require.Equal(t, http.StatusOK, result.Status)

		books := result.Books(t)
		require.Len(t, books, 1)
		assert.Equal(t, created.ID, books[0].ID)
	})

	t.Run("整体替换", func(t *testing.T) {
		result := Do(t, http.MethodPut, bookURL, "application/json", map[string]string{
			"title": title + "-v2",
		})
		require.Equal(t, http.StatusOK, result.Status)

		got := GetJSON(t, bookURL).Book(t)
		assert.Equal(t, title+"-v2", got.Title)
		assert.Empty(t, got.Author)
		assert.Nil(t, got.ReleaseDate)
	})

	t.Run("删除后返回404", func(t *testing.T) {
		result := Do(t, http.MethodDelete, bookURL, "", nil)
		require.Equal(t, http.StatusNoContent, result.Status)

		assert.Equal(t, http.StatusNotFound, GetJSON(t, bookURL).Status)
		assert.Equal(t, http.StatusNotFound, Do(t, http.MethodDelete, bookURL, "", nil).Status)
		t.Logf("✓ 删除成功,图书ID: %d", created.ID)
	})
}

// TestBookValidation 请求体校验
func TestBookValidation(t *testing.T) {
	t.Run("请求体带id返回422", func(t *testing.T) {
		result := PostJSON(t, BaseURL(), map[string]interface{}{"id": 0, "title": "x"})
		assert.Equal(t, http.StatusUnprocessableEntity, result.Status)
		assert.Equal(t, 42200, result.Error(t).Code)
	})

	t.Run("不是JSON返回415", func(t *testing.T) {
		result := Do(t, http.MethodPost, BaseURL(), "application/xml", "<book/>")
		assert.Equal(t, http.StatusUnsupportedMediaType, result.Status)
		assert.Equal(t, 41500, result.Error(t).Code)
	})

	t.Run("没有请求体返回415", func(t *testing.T) {
		result := Do(t, http.MethodPost, BaseURL(), "application/json", nil)
		assert.Equal(t, http.StatusUnsupportedMediaType, result.Status)
	})

	t.Run("不存在的ID返回404", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			result := Do(t, method, BaseURL()+"/0", "application/json", map[string]string{"title": "x"})
			assert.Equal(t, http.StatusNotFound, result.Status, method)
		}
	})
}

// TestBookSearch 检索接口(依赖启动灌数写入的示例图书)
func TestBookSearch(t *testing.T) {
	t.Run("内容关键词", func(t *testing.T) {
		result := GetJSON(t, BaseURL()+"/findWord?word=force")
		require.Equal(t, http.StatusOK, result.Status)

		titles := make([]string, 0)
		for _, b := range result.Books(t) {
			titles = append(titles, b.Title)
		}
		assert.Contains(t, titles, "Star Wars: From the Adventures of Luke Skywalker")
	})

	t.Run("组合检索", func(t *testing.T) {
		result := PostJSON(t, BaseURL()+"/findForm", map[string]string{
			"author":      "Roald Dahl",
			"releaseDate": "1964-01-17",
		})
		require.Equal(t, http.StatusOK, result.Status)

		for _, b := range result.Books(t) {
			assert.Equal(t, "Roald Dahl", b.Author)
			require.NotNil(t, b.ReleaseDate)
			assert.Equal(t, "1964-01-17", *b.ReleaseDate)
		}
	})
}
