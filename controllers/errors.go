package controllers

import "errors"

var (
	ErrNoPermission       = errors.New("you don't have permission to access this resource")
	ErrInvalidRequestType = errors.New("invalid request type, use waiter, water or bill")
	ErrRequestAlreadyDone = errors.New("request is already marked as done")
	ErrTableNotFound      = errors.New("table not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNoAnalyticsData    = errors.New("no requests recorded in the selected window")
)
