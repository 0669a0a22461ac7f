package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"vartree/internal/domain"
)

// json is a drop-in replacement for encoding/json with better performance.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func decodeJSON(data []byte) (domain.Value, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return domain.Value{}, fmt.Errorf("decode json: %w", iter.Error)
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue {
		return domain.Value{}, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return v, nil
}

// readValue walks the token stream directly so numbers keep their integer
// form. Map key order is irrelevant since domain maps sort their keys.
func readValue(iter *jsoniter.Iterator) domain.Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		var entries []domain.Entry
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			entries = append(entries, domain.Entry{Key: key, Value: readValue(it)})
			return it.Error == nil
		})
		return domain.Map(entries...)

	case jsoniter.ArrayValue:
		var items []domain.Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return it.Error == nil
		})
		return domain.List(items...)

	case jsoniter.StringValue:
		return domain.Scalar(iter.ReadString())

	case jsoniter.NumberValue:
		n := iter.ReadNumber()
		if i, err := n.Int64(); err == nil {
			return domain.Scalar(i)
		}
		f, err := n.Float64()
		if err != nil {
			iter.ReportError("readValue", "invalid number "+string(n))
			return domain.Value{}
		}
		return domain.Scalar(f)

	case jsoniter.BoolValue:
		return domain.Scalar(iter.ReadBool())

	case jsoniter.NilValue:
		iter.ReadNil()
		return domain.Scalar(nil)

	default:
		iter.ReportError("readValue", "unexpected token")
		return domain.Value{}
	}
}

// decodeJSONL reads one JSON value per non-empty line into a list
func decodeJSONL(data []byte) (domain.Value, error) {
	var items []domain.Value
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		v, err := decodeJSON(text)
		if err != nil {
			return domain.Value{}, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, v)
	}
	if err := scanner.Err(); err != nil {
		return domain.Value{}, err
	}
	return domain.List(items...), nil
}

// EncodeJSON renders v as compact JSON. The invalid value encodes as null.
func EncodeJSON(v domain.Value) ([]byte, error) {
	return json.Marshal(v.ToGo())
}

// EncodeJSONIndent renders v as indented JSON
func EncodeJSONIndent(v domain.Value) ([]byte, error) {
	return json.MarshalIndent(v.ToGo(), "", "  ")
}
