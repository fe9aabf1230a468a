// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import "os"

// Dump encodes host and writes it to the file at path, creating or
// truncating it. This is a thin convenience over EncodeToSink and is
// explicitly out of core scope (spec.md §1, §6); it exists only so the
// public surface matches the source's dump/load pair.
func Dump(path string, host interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{kind: KErrStream, msg: err.Error()}
	}
	defer f.Close()
	if err := EncodeToSink(host, f); err != nil {
		return err
	}
	return f.Close()
}

// Load reads a complete frame from the file at path and decodes it to a
// host value. See Dump.
func Load(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{kind: KErrStream, msg: err.Error()}
	}
	defer f.Close()
	return DecodeFromSource(f, nil)
}
