package website

import "errors"

type CreateWebsiteDTO struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain" binding:"required,url"`
}

var errWebsiteExists = errors.New("website already exists")
