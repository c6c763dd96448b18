package scraper

import (
	"errors"
)

var (
	ErrPageNotLoaded     = errors.New("page never finished loading")
	ErrCatalogNotFound   = errors.New("product catalog not found")
	ErrContentUnreadable = errors.New("page content unreadable")
)
