package storefront_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
)

func TestProduct_Specifications(t *testing.T) {
	p := storefront.Product{GrainLength: "8.3mm", Moisture: "12%", PackagingOptions: "25kg bags"}

	assert.Equal(t, []storefront.Spec{
		{Label: "Grain Length", Value: "8.3mm"},
		{Label: "Moisture", Value: "12%"},
		{Label: "Packaging", Value: "25kg bags"},
	}, p.Specifications())
	assert.Empty(t, storefront.Product{}.Specifications())
}

func TestProduct_Gallery(t *testing.T) {
	p := storefront.Product{Images: []string{"a.jpg", " ", "", "b.jpg"}}

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Gallery())
	assert.True(t, p.HasGallery())
	assert.False(t, storefront.Product{}.HasGallery())
}

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name   string
		record storefront.Record
		want   string
	}{
		{name: "derived from name", record: storefront.Product{Category: "Basmati Rice"}, want: "basmati-rice"},
		{name: "explicit slug wins", record: storefront.Product{Category: "Basmati Rice", CategoryKey: "basmati"}, want: "basmati"},
		{name: "no category", record: storefront.Product{}, want: ""},
		{name: "blog post", record: storefront.BlogPost{Category: "Export & Trade"}, want: "export-and-trade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.CategorySlug())
		})
	}
}

func TestCategory_Key(t *testing.T) {
	assert.Equal(t, "rice", storefront.Category{Name: "Rice", Slug: "rice"}.Key())
	assert.Equal(t, "whole-spices", storefront.Category{Name: "Whole Spices"}.Key())
}

func TestPageTitle(t *testing.T) {
	product := storefront.Product{Name: "Basmati Rice"}

	assert.Equal(t, "Basmati Rice - Patel Universal Traders", storefront.PageTitle(product, ""))
	assert.Equal(t, "Basmati Rice - Acme", storefront.PageTitle(product, "Acme"))
}

func TestBlogPost_PublishedDate(t *testing.T) {
	var post storefront.BlogPost
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Harvest", "publish_date": "2024-03-05T10:00:00"}`), &post))

	assert.True(t, post.HasPublished())
	assert.Equal(t, "Mar 5, 2024", post.PublishedDate())
	assert.Equal(t, "March 5, 2024", post.PublishedDateLong())

	assert.Empty(t, storefront.BlogPost{}.PublishedDate())
	assert.Empty(t, storefront.BlogPost{}.PublishedDateLong())
}

func TestDecodeRecords_IgnoresUnknownFields(t *testing.T) {
	var products []storefront.Product
	doc := `[{"id": 9, "name": "Ajwain", "category": "Spices", "origin": "Gujarat", "price": 12.5}]`
	require.NoError(t, json.Unmarshal([]byte(doc), &products))

	require.Len(t, products, 1)
	assert.Equal(t, 9, products[0].ID)
	assert.Equal(t, "spices", products[0].CategorySlug())
}
