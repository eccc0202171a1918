package sansio

import "errors"

var (
	ErrReleased    = errors.New("sansio: borrow released")
	ErrNilProtocol = errors.New("sansio: nil protocol")
)
