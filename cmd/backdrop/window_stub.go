// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build !cgo

package main

import (
	"github.com/pkg/errors"
)

func runWindow(*app) error {
	return errors.New("window mode is not available in builds without cgo")
}
