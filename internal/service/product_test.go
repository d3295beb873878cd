package service

import (
	"context"
	"testing"

	"github.com/jonyprachine123/test-2/internal/logger"
	"github.com/jonyprachine123/test-2/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (ProductService, *store.MemoryStore, string) {
	t.Helper()
	s := store.NewMemoryStore()
	images, dir := newDiskImages(t)
	return NewProductService(s, images, logger.Discard()), s, dir
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults discount and features", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title: strPtr("  Panjabi  "),
			Price: decPtr("1500"),
		})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Panjabi", p.Title)
		assert.EqualValues(t, 0, p.Discount)
		assert.Equal(t, []string{}, p.Features)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("keeps feature order", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		created, err := svc.CreateProduct(ctx, &ProductCommand{
			Title:    strPtr("Kurta"),
			Price:    decPtr("999.50"),
			Discount: intPtr(15),
			Features: &[]string{"cotton", "hand stitched", "machine washable"},
		})
		require.NoError(t, err)

		got, err := svc.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"cotton", "hand stitched", "machine washable"}, got.Features)
		assert.True(t, decimal.RequireFromString("999.50").Equal(got.Price))
		assert.EqualValues(t, 15, got.Discount)
	})

	t.Run("uploaded image resolves to a public url", func(t *testing.T) {
		svc, _, dir := newProductService(t)

		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title: strPtr("Saree"),
			Price: decPtr("3200"),
			Image: imageFile(t, "saree.png"),
		})
		require.NoError(t, err)
		assert.Regexp(t, `^/uploads/.+\.png$`, p.Image)
		assert.Equal(t, "http://shop.test"+p.Image, p.ImageURL)
		assert.True(t, fileExists(uploadedFile(dir, p.Image)))
	})

	t.Run("missing title or price", func(t *testing.T) {
		svc, s, _ := newProductService(t)

		_, err := svc.CreateProduct(ctx, &ProductCommand{Price: decPtr("10")})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Title and price are required", validationErr.Message)
		assert.Contains(t, validationErr.Details, "title")

		_, err = svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("No price")})
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Details, "price")

		n, err := s.CountProducts(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("discount out of range", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		for _, d := range []int{-1, 101} {
			_, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("x"), Price: decPtr("1"), Discount: intPtr(d)})
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr, "discount %d", d)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		_, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("x"), Price: decPtr("-1")})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestListProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newProductService(t)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr(title), Price: decPtr("1")})
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "third", products[0].Title)
	assert.Equal(t, "second", products[1].Title)
	assert.Equal(t, "first", products[2].Title)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only supplied fields", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title:       strPtr("Lungi"),
			Description: strPtr("Checked"),
			Price:       decPtr("450"),
			Discount:    intPtr(5),
			Features:    &[]string{"a", "b"},
		})
		require.NoError(t, err)

		updated, err := svc.UpdateProduct(ctx, p.ID, &ProductCommand{Price: decPtr("500")})
		require.NoError(t, err)
		assert.Equal(t, "Lungi", updated.Title)
		assert.Equal(t, "Checked", updated.Description)
		assert.True(t, decimal.NewFromInt(500).Equal(updated.Price))
		assert.EqualValues(t, 5, updated.Discount)
		assert.Equal(t, []string{"a", "b"}, updated.Features)
	})

	t.Run("features replace the previous list", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title:    strPtr("Shirt"),
			Price:    decPtr("800"),
			Features: &[]string{"A", "B", "C"},
		})
		require.NoError(t, err)

		_, err = svc.UpdateProduct(ctx, p.ID, &ProductCommand{Features: &[]string{"X"}})
		require.NoError(t, err)

		got, err := svc.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"X"}, got.Features)
	})

	t.Run("new image removes the old upload", func(t *testing.T) {
		svc, _, dir := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title: strPtr("Shoe"),
			Price: decPtr("2500"),
			Image: imageFile(t, "old.png"),
		})
		require.NoError(t, err)
		oldPath := uploadedFile(dir, p.Image)
		require.True(t, fileExists(oldPath))

		updated, err := svc.UpdateProduct(ctx, p.ID, &ProductCommand{Image: imageFile(t, "new.png")})
		require.NoError(t, err)
		assert.NotEqual(t, p.Image, updated.Image)
		assert.False(t, fileExists(oldPath))
		assert.True(t, fileExists(uploadedFile(dir, updated.Image)))
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		_, err := svc.UpdateProduct(ctx, 42, &ProductCommand{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("Cap"), Price: decPtr("100")})
		require.NoError(t, err)

		_, err = svc.UpdateProduct(ctx, p.ID, &ProductCommand{Title: strPtr("  ")})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the uploaded image", func(t *testing.T) {
		svc, _, dir := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title: strPtr("Watch"),
			Price: decPtr("5000"),
			Image: imageFile(t, "watch.png"),
		})
		require.NoError(t, err)
		path := uploadedFile(dir, p.Image)

		require.NoError(t, svc.DeleteProduct(ctx, p.ID))
		assert.False(t, fileExists(path))

		_, err = svc.GetProduct(ctx, p.ID)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("product without image", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("Belt"), Price: decPtr("300")})
		require.NoError(t, err)

		assert.NoError(t, svc.DeleteProduct(ctx, p.ID))
	})

	t.Run("external image url is left alone", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		p, err := svc.CreateProduct(ctx, &ProductCommand{
			Title:    strPtr("Bag"),
			Price:    decPtr("300"),
			ImageURL: strPtr("https://cdn.example.com/bag.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/bag.jpg", p.ImageURL)

		assert.NoError(t, svc.DeleteProduct(ctx, p.ID))
	})

	t.Run("image url cannot claim another product's upload", func(t *testing.T) {
		svc, _, dir := newProductService(t)
		owner, err := svc.CreateProduct(ctx, &ProductCommand{
			Title: strPtr("Watch"),
			Price: decPtr("5000"),
			Image: imageFile(t, "watch.png"),
		})
		require.NoError(t, err)

		_, err = svc.CreateProduct(ctx, &ProductCommand{
			Title:    strPtr("Copy"),
			Price:    decPtr("100"),
			ImageURL: strPtr(owner.Image),
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Details, "imageUrl")

		other, err := svc.CreateProduct(ctx, &ProductCommand{Title: strPtr("Belt"), Price: decPtr("300")})
		require.NoError(t, err)
		_, err = svc.UpdateProduct(ctx, other.ID, &ProductCommand{ImageURL: strPtr(" " + owner.Image + " ")})
		assert.ErrorAs(t, err, &validationErr)

		require.NoError(t, svc.DeleteProduct(ctx, other.ID))
		assert.True(t, fileExists(uploadedFile(dir, owner.Image)), "owner's upload survives")
	})

	t.Run("missing product", func(t *testing.T) {
		svc, _, _ := newProductService(t)
		assert.ErrorIs(t, svc.DeleteProduct(ctx, 7), ErrProductNotFound)
	})
}
