package book

import "time"

// SampleBooks 启动灌数使用的示例图书(固定8本,ID从1开始)
// 每次调用返回新的切片,调用方可以自由修改
func SampleBooks() []*Book {
	return []*Book{
		{
			ID:          1,
			Title:       "Star Wars: From the Adventures of Luke Skywalker",
			Author:      "George Lucas",
			Content:     "Star wars. Force. Jedi. Joda.",
			ReleaseDate: NewDate(1976, time.November, 12),
		},
		{
			ID:          2,
			Title:       "The Lord of the Rings",
			Author:      "J. R. R. Tolkien",
			Content:     "Hobbit. Ring. Sauron.",
			ReleaseDate: NewDate(1954, time.July, 29),
		},
		{
			ID:          3,
			Title:       "Harry Potter and the Philosopher's Stone",
			Author:      "J. K. Rowling",
			Content:     "Wizard. Stone. Magic.",
			ReleaseDate: NewDate(1997, time.June, 26),
		},
		{
			ID:          4,
			Title:       "The Godfather",
			Author:      "Mario Puzo",
			Content:     "Mafia. Vito Corleone.",
			ReleaseDate: NewDate(1969, time.March, 10),
		},
		{
			ID:          5,
			Title:       "The Firm",
			Author:      "John Grisham",
			Content:     "Lawyers. Corruption. Law.",
			ReleaseDate: NewDate(1991, time.February, 1),
		},
		{
			ID:          6,
			Title:       "Jurassic park",
			Author:      "Michael Crichton",
			Content:     "Dinosaurs. Genetic engineering. Amusement park.",
			ReleaseDate: NewDate(1990, time.November, 20),
		},
		{
			ID:          7,
			Title:       "The Shawshank redemption",
			Author:      "Mark Kermode",
			Content:     "Prison. Murder.",
			ReleaseDate: NewDate(2003, time.July, 1),
		},
		{
			ID:          8,
			Title:       "Charlie and the Chocolate Factory",
			Author:      "Roald Dahl",
			Content:     "Adventures of young Charlie Bucket inside the chocolate factory of eccentric chocolatier Willy Wonka.",
			ReleaseDate: NewDate(1964, time.January, 17),
		},
	}
}
