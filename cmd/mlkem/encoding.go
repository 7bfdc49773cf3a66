package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

func encoderFor(name string) (func([]byte) string, error) {
	switch name {
	case "hex":
		return hex.EncodeToString, nil
	case "base64":
		return base64.StdEncoding.EncodeToString, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q: want hex or base64", name)
	}
}

func decoderFor(name string) (func(string) ([]byte, error), error) {
	switch name {
	case "hex":
		return hex.DecodeString, nil
	case "base64":
		return base64.StdEncoding.DecodeString, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q: want hex or base64", name)
	}
}
