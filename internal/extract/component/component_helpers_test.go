package component

import "github.com/sinocarta/hanzi-extract/internal/span"

func mockNestedSpans() []span.Record {
	return []span.Record{
		{Text: "你好，世界", Start: 0, End: 20},
		{Text: "你好", Start: 0, End: 6},
	}
}
