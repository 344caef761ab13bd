// Package confusion holds the table of handwritten glyphs that are easily
// mistaken for one another.
package confusion

// pairs are unordered; lookup goes both ways.
var pairs = [][2]rune{
	{'b', 'd'}, {'b', 'p'}, {'b', 'q'}, {'d', 'g'}, {'d', 'q'},
	{'e', 'a'}, {'g', 'a'}, {'g', 'y'}, {'i', 'j'}, {'i', 'l'},
	{'k', 'x'}, {'m', 'n'}, {'n', 'c'}, {'n', 'h'}, {'p', 'q'},
	{'u', 'v'}, {'u', 'w'}, {'u', 'y'}, {'w', 'm'}, {'y', 'v'},
	{'C', 'c'}, {'K', 'k'}, {'O', 'o'}, {'P', 'p'}, {'S', 's'},
	{'U', 'u'}, {'V', 'v'}, {'W', 'w'}, {'X', 'x'}, {'Y', 'y'},
	{'l', 'I'}, {'O', 'Q'}, {'f', 'F'}, {'z', 'Z'}, {'q', 'a'},
}

var table = build(pairs)

func build(list [][2]rune) map[rune]map[rune]struct{} {
	t := make(map[rune]map[rune]struct{}, len(list)*2)
	add := func(a, b rune) {
		if t[a] == nil {
			t[a] = make(map[rune]struct{})
		}
		t[a][b] = struct{}{}
	}
	for _, p := range list {
		add(p[0], p[1])
		add(p[1], p[0])
	}
	return t
}

// Confusable reports whether a and b are listed as visually interchangeable.
// A letter is never confusable with itself.
func Confusable(a, b rune) bool {
	_, ok := table[a][b]
	return ok
}

// Set returns the letters confusable with r, in no particular order.
func Set(r rune) []rune {
	out := make([]rune, 0, len(table[r]))
	for c := range table[r] {
		out = append(out, c)
	}
	return out
}
