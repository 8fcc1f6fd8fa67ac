package tooling

import (
	"fmt"
	"testing"
)

const benchSource = `shared {
  type Option {
    Some(value),
    None,
  }

  fn unwrap(opt) {
    match opt {
      Some(v) => v,
      None => 0,
    }
  }
}

server api {
  fn ping() {
    return 1
  }

  route "GET /ping" {
    return ping()
  }
}

client {
  state count = 0

  component Counter() {
    <div>{count}</div>
  }
}
`

func BenchmarkParseFile(b *testing.B) {
	api := NewAPI()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		uri := fmt.Sprintf("bench_%d.tova", i)
		if _, err := api.ParseFile(uri, benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdateDocumentUnchanged(b *testing.B) {
	api := NewAPI()
	if _, err := api.ParseFile("bench.tova", benchSource); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := api.UpdateDocument("bench.tova", benchSource, i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetCompletions(b *testing.B) {
	api := NewAPI()
	if _, err := api.ParseFile("bench.tova", benchSource); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := api.GetCompletions("bench.tova", Position{Line: 1, Character: 0}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetHover(b *testing.B) {
	api := NewAPI()
	doc, err := api.ParseFile("bench.tova", benchSource)
	if err != nil {
		b.Fatal(err)
	}
	var pos Position
	for _, sym := range doc.Symbols {
		if sym.Name == "unwrap" {
			pos = sym.Range.Start
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := api.GetHover("bench.tova", pos); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetDocumentSymbols(b *testing.B) {
	api := NewAPI()
	if _, err := api.ParseFile("bench.tova", benchSource); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := api.GetDocumentSymbols("bench.tova"); err != nil {
			b.Fatal(err)
		}
	}
}
