package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// bindFailed answers a request whose body could not be turned into a command
func bindFailed(c *gin.Context, log *slog.Logger, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(c, log, err)
		return
	}
	badRequest(c, err)
}

// isForm reports whether the request carries form fields rather than JSON
func isForm(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm, gin.MIMEPOSTForm:
		return true
	}
	return false
}

// catalogBody is the JSON shape shared by product and banner requests.
// Numbers may arrive as strings; features may be an array or an encoded string.
type catalogBody struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Discount    *service.FlexInt `json:"discount"`
	Features    json.RawMessage  `json:"features"`
	Link        *string          `json:"link"`
	ImageURL    *string          `json:"imageUrl"`
	Image       *string          `json:"image"`
}

func (b *catalogBody) imageURL() *string {
	if b.ImageURL != nil {
		return b.ImageURL
	}
	return b.Image
}

func (b *catalogBody) discount() *int {
	if b.Discount == nil {
		return nil
	}
	d := b.Discount.Int()
	return &d
}

// formFields reads the text fields of a product or banner form
type formFields struct {
	c *gin.Context
}

func (f formFields) text(name string) *string {
	value, ok := f.c.GetPostForm(name)
	if !ok {
		return nil
	}
	return &value
}

// price returns nil for an absent or blank field
func (f formFields) price() (*decimal.Decimal, error) {
	raw := f.text("price")
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, &service.ValidationError{Message: "Invalid price", Details: map[string]string{"price": "must be a number"}}
	}
	return &price, nil
}

func (f formFields) discount() (*int, error) {
	raw := f.text("discount")
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	discount, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, &service.ValidationError{Message: "Invalid discount", Details: map[string]string{"discount": "must be a whole number"}}
	}
	return &discount, nil
}

func (f formFields) imageURL() *string {
	if url := f.text("imageUrl"); url != nil {
		return url
	}
	return f.text("image")
}

func (f formFields) image() (*multipart.FileHeader, error) {
	file, err := f.c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

func decodeFeatures(raw *string) (*[]string, error) {
	if raw == nil {
		return nil, nil
	}
	features, err := service.ParseFeatures(*raw)
	if err != nil {
		return nil, err
	}
	return &features, nil
}

// bindProductCommand decodes a multipart, urlencoded or JSON product request
func bindProductCommand(c *gin.Context) (*service.ProductCommand, error) {
	if !isForm(c) {
		var body catalogBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		cmd := &service.ProductCommand{
			Title:       body.Title,
			Description: body.Description,
			Price:       body.Price,
			Discount:    body.discount(),
			ImageURL:    body.imageURL(),
		}
		if len(body.Features) > 0 && string(body.Features) != "null" {
			raw := string(body.Features)
			features, err := decodeFeatures(&raw)
			if err != nil {
				return nil, err
			}
			cmd.Features = features
		}
		return cmd, nil
	}

	form := formFields{c: c}
	price, err := form.price()
	if err != nil {
		return nil, err
	}
	discount, err := form.discount()
	if err != nil {
		return nil, err
	}
	features, err := decodeFeatures(form.text("features"))
	if err != nil {
		return nil, err
	}
	image, err := form.image()
	if err != nil {
		return nil, err
	}
	return &service.ProductCommand{
		Title:       form.text("title"),
		Description: form.text("description"),
		Price:       price,
		Discount:    discount,
		Features:    features,
		ImageURL:    form.imageURL(),
		Image:       image,
	}, nil
}

// bindBannerCommand decodes a multipart, urlencoded or JSON banner request
func bindBannerCommand(c *gin.Context) (*service.BannerCommand, error) {
	if !isForm(c) {
		var body catalogBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &service.BannerCommand{
			Title:       body.Title,
			Description: body.Description,
			Price:       body.Price,
			Discount:    body.discount(),
			Link:        body.Link,
			ImageURL:    body.imageURL(),
		}, nil
	}

	form := formFields{c: c}
	price, err := form.price()
	if err != nil {
		return nil, err
	}
	discount, err := form.discount()
	if err != nil {
		return nil, err
	}
	image, err := form.image()
	if err != nil {
		return nil, err
	}
	return &service.BannerCommand{
		Title:       form.text("title"),
		Description: form.text("description"),
		Price:       price,
		Discount:    discount,
		Link:        form.text("link"),
		ImageURL:    form.imageURL(),
		Image:       image,
	}, nil
}
