package book

// Main-line replies for the first few moves. Weights are rough popularity.
var defaultEntries = []Entry{
	{Replies: []Reply{{"e2e4", 45}, {"d2d4", 40}, {"c2c4", 10}, {"g1f3", 5}}},

	{Line: []string{"e2e4"}, Replies: []Reply{{"c7c5", 40}, {"e7e5", 35}, {"e7e6", 15}, {"c7c6", 10}}},
	{Line: []string{"e2e4", "e7e5"}, Replies: []Reply{{"g1f3", 90}, {"b1c3", 10}}},
	{Line: []string{"e2e4", "e7e5", "g1f3"}, Replies: []Reply{{"b8c6", 85}, {"g8f6", 15}}},
	{Line: []string{"e2e4", "e7e5", "g1f3", "b8c6"}, Replies: []Reply{{"f1b5", 60}, {"f1c4", 40}}},
	{Line: []string{"e2e4", "c7c5"}, Replies: []Reply{{"g1f3", 80}, {"b1c3", 20}}},
	{Line: []string{"e2e4", "c7c5", "g1f3"}, Replies: []Reply{{"d7d6", 45}, {"b8c6", 30}, {"e7e6", 25}}},
	{Line: []string{"e2e4", "e7e6"}, Replies: []Reply{{"d2d4", 100}}},
	{Line: []string{"e2e4", "c7c6"}, Replies: []Reply{{"d2d4", 100}}},

	{Line: []string{"d2d4"}, Replies: []Reply{{"g8f6", 55}, {"d7d5", 45}}},
	{Line: []string{"d2d4", "d7d5"}, Replies: []Reply{{"c2c4", 80}, {"g1f3", 20}}},
	{Line: []string{"d2d4", "d7d5", "c2c4"}, Replies: []Reply{{"e7e6", 50}, {"c7c6", 50}}},
	{Line: []string{"d2d4", "g8f6"}, Replies: []Reply{{"c2c4", 85}, {"g1f3", 15}}},
	{Line: []string{"d2d4", "g8f6", "c2c4"}, Replies: []Reply{{"e7e6", 50}, {"g7g6", 50}}},

	{Line: []string{"c2c4"}, Replies: []Reply{{"e7e5", 40}, {"g8f6", 40}, {"c7c5", 20}}},
	{Line: []string{"g1f3"}, Replies: []Reply{{"d7d5", 50}, {"g8f6", 50}}},
}

// Default returns the built-in book.
func Default() *Book {
	b, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return b
}
