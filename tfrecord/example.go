package tfrecord

import (
	"fmt"
	"sort"

	"github.com/fwojciec/flickrwarc"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from tensorflow/core/example/{example,feature}.proto.
const (
	exampleFeatures protowire.Number = 1 // Example.features
	featuresFeature protowire.Number = 1 // Features.feature (map<string, Feature>)
	mapKey          protowire.Number = 1
	mapValue        protowire.Number = 2
	featureBytes    protowire.Number = 1 // Feature.bytes_list
	featureFloat    protowire.Number = 2 // Feature.float_list
	featureInt64    protowire.Number = 3 // Feature.int64_list
	listValue       protowire.Number = 1 // {Bytes,Int64}List.value
)

// MarshalExample encodes features as a serialized tf.train.Example.
// Map entries are written in name order so output is deterministic.
func MarshalExample(features flickrwarc.Features) []byte {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	var fs []byte
	for _, name := range names {
		var entry []byte
		entry = protowire.AppendTag(entry, mapKey, protowire.BytesType)
		entry = protowire.AppendString(entry, name)
		entry = protowire.AppendTag(entry, mapValue, protowire.BytesType)
		entry = protowire.AppendBytes(entry, marshalFeature(features[name]))

		fs = protowire.AppendTag(fs, featuresFeature, protowire.BytesType)
		fs = protowire.AppendBytes(fs, entry)
	}

	var b []byte
	b = protowire.AppendTag(b, exampleFeatures, protowire.BytesType)
	b = protowire.AppendBytes(b, fs)
	return b
}

func marshalFeature(f flickrwarc.Feature) []byte {
	var list []byte
	var b []byte
	switch f.Kind {
	case flickrwarc.FeatureKindInt64:
		var packed []byte
		for _, v := range f.Int64 {
			packed = protowire.AppendVarint(packed, uint64(v))
		}
		list = protowire.AppendTag(list, listValue, protowire.BytesType)
		list = protowire.AppendBytes(list, packed)
		b = protowire.AppendTag(b, featureInt64, protowire.BytesType)
	default:
		for _, v := range f.Bytes {
			list = protowire.AppendTag(list, listValue, protowire.BytesType)
			list = protowire.AppendBytes(list, v)
		}
		b = protowire.AppendTag(b, featureBytes, protowire.BytesType)
	}
	return protowire.AppendBytes(b, list)
}

// UnmarshalExample decodes a serialized tf.train.Example.
// Float features are skipped; this module never writes them.
func UnmarshalExample(b []byte) (flickrwarc.Features, error) {
	features := make(flickrwarc.Features)
	err := eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != exampleFeatures || typ != protowire.BytesType {
			return nil
		}
		return eachField(v, func(num protowire.Number, typ protowire.Type, entry []byte) error {
			if num != featuresFeature || typ != protowire.BytesType {
				return nil
			}
			name, f, ok, err := unmarshalEntry(entry)
			if err != nil {
				return err
			}
			if ok {
				features[name] = f
			}
			return nil
		})
	})
	if err != nil {
		return nil, flickrwarc.Errorf(flickrwarc.EINVALID, "malformed example: %v", err)
	}
	return features, nil
}

func unmarshalEntry(entry []byte) (name string, f flickrwarc.Feature, ok bool, err error) {
	err = eachField(entry, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == mapKey && typ == protowire.BytesType:
			name = string(v)
		case num == mapValue && typ == protowire.BytesType:
			f, ok, err = unmarshalFeature(v)
			return err
		}
		return nil
	})
	return name, f, ok, err
}

func unmarshalFeature(b []byte) (f flickrwarc.Feature, ok bool, err error) {
	err = eachField(b, func(num protowire.Number, typ protowire.Type, list []byte) error {
		if typ != protowire.BytesType {
			return nil
		}
		switch num {
		case featureBytes:
			f, ok = flickrwarc.Feature{Kind: flickrwarc.FeatureKindBytes, Bytes: [][]byte{}}, true
			return eachField(list, func(num protowire.Number, typ protowire.Type, v []byte) error {
				if num == listValue && typ == protowire.BytesType {
					f.Bytes = append(f.Bytes, v)
				}
				return nil
			})
		case featureInt64:
			f, ok = flickrwarc.Feature{Kind: flickrwarc.FeatureKindInt64, Int64: []int64{}}, true
			return unmarshalInt64List(list, &f)
		case featureFloat:
			ok = false
		}
		return nil
	})
	return f, ok, err
}

// unmarshalInt64List accepts both packed and unpacked encodings.
func unmarshalInt64List(b []byte, f *flickrwarc.Feature) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == listValue && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.Int64 = append(f.Int64, int64(v))
			b = b[n:]
		case num == listValue && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return protowire.ParseError(m)
				}
				f.Int64 = append(f.Int64, int64(v))
				packed = packed[m:]
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// eachField calls fn for every length-delimited or scalar field in b.
// For non-bytes fields v is nil.
func eachField(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, v); err != nil {
				return err
			}
			b = b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		if err := fn(num, typ, nil); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
