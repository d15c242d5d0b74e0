// Package fixtures provides datasets to load into a store, for tests and development.
package fixtures

import (
	"time"

	"github.com/newsdesk/newsdesk"
)

// A Dataset is a full set of records. Comments refer to their article by its 1-based
// position in Articles, since article ids are only known once inserted.
type Dataset struct {
	Topics   []*newsdesk.Topic
	Users    []*newsdesk.User
	Articles []*newsdesk.Article
	Comments []*newsdesk.Comment
}

func date(month time.Month, day, hour, min int) time.Time {
	return time.Date(2020, month, day, hour, min, 0, 0, time.UTC)
}

// TestData returns the dataset the store and end to end tests are written against.
// Every call returns fresh records.
//
// Topic "paper" and user "lurker" have no articles. Article 1 has 13 comments, articles
// 2 and 4 have none.
func TestData() *Dataset {
	d := &Dataset{
		Topics: []*newsdesk.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []*newsdesk.User{
			{Username: "butter_bridge"},
			{Username: "icellusedkars"},
			{Username: "rogersop"},
			{Username: "lurker"},
		},
		Articles: []*newsdesk.Article{
			{Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge",
				Body: "I find this existence challenging", CreatedAt: date(time.July, 9, 20, 11), Votes: 100},
			{Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars",
				Body: "Call me Mitchell. Some years ago having little or no money in my purse, and nothing particular to interest me on shore, I thought I would buy a laptop about a little and see the codey part of the world.",
				CreatedAt: date(time.October, 16, 5, 3)},
			{Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars",
				Body: "some gifs", CreatedAt: date(time.November, 3, 9, 12)},
			{Title: "Student SUES Mitch!", Topic: "mitch", Author: "rogersop",
				Body:      "We all love Mitch and his wonderful, unique typing style. However, the volume of his typing has ALLEGEDLY burst another students eardrums, and they are now suing for damages",
				CreatedAt: date(time.May, 6, 1, 14)},
			{Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop",
				Body: "Bastet walks amongst us, and the cats are taking arms!", CreatedAt: date(time.August, 3, 13, 14)},
			{Title: "A", Topic: "mitch", Author: "icellusedkars",
				Body: "Delicious tin of cat food", CreatedAt: date(time.October, 18, 1, 0)},
			{Title: "Z", Topic: "mitch", Author: "icellusedkars",
				Body: "I was hungry.", CreatedAt: date(time.January, 7, 14, 8)},
			{Title: "Does Mitch predate civilisation?", Topic: "mitch", Author: "icellusedkars",
				Body: "Archaeologists have uncovered a gigantic statue from the dawn of humanity, and it has an uncanny resemblance to Mitch.", CreatedAt: date(time.April, 17, 1, 8)},
			{Title: "They're not exactly dogs, are they?", Topic: "mitch", Author: "butter_bridge",
				Body: "Well? Think about it.", CreatedAt: date(time.June, 6, 9, 10)},
			{Title: "Seven inspirational thought leaders from Manchester UK", Topic: "mitch", Author: "rogersop",
				Body: "Who are we kidding, there is only one, and it's Mitch!", CreatedAt: date(time.May, 14, 4, 15)},
			{Title: "Am I a cat?", Topic: "mitch", Author: "icellusedkars",
				Body: "Having run out of ideas for articles, I am staring at the wall blankly, like a cat. Does this make me a cat?", CreatedAt: date(time.January, 15, 22, 21)},
			{Title: "Moustache", Topic: "mitch", Author: "butter_bridge",
				Body: "Have you seen the size of that thing?", CreatedAt: date(time.October, 11, 11, 24)},
		},
	}

	bodies := []string{
		"Oh, I've got compassion running out of my nose, pal! I'm the Sultan of Sentiment!",
		"The beautiful thing about treasure is that it exists. Got to find out what kind of sheets these are; not cotton, not rayon, silky.",
		"Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones is a form of fashion suicide, but, uh, call me crazy, on you it works.",
		"I hate streaming services",
		"Lobster pot",
		"Delicious crackerbreads",
		"Superficially charming",
		"Massive intercranial brain haemorrhage",
		"Ambidextrous marsupial",
		"git push origin master",
		"This morning, I showered for nine minutes.",
		"Fruit pastilles",
		"I carry a log, yes. Is it funny to you? It is not to me.",
	}
	users := []string{"butter_bridge", "icellusedkars", "rogersop"}

	for i, body := range bodies {
		d.Comments = append(d.Comments, &newsdesk.Comment{
			ArticleID: 1,
			Author:    users[i%len(users)],
			Body:      body,
			Votes:     i * 2,
			CreatedAt: date(time.March, 1+i, 10, i),
		})
	}

	d.Comments = append(d.Comments,
		&newsdesk.Comment{ArticleID: 9, Author: "butter_bridge", Body: "The owls are not what they seem.",
			Votes: 20, CreatedAt: date(time.March, 14, 17, 2)},
		&newsdesk.Comment{ArticleID: 9, Author: "icellusedkars", Body: "What do you see? I have no idea where this will lead us. This place I speak of, is known as the Black Lodge.",
			Votes: 16, CreatedAt: date(time.April, 6, 12, 17)},
		&newsdesk.Comment{ArticleID: 3, Author: "icellusedkars", Body: "Ambidextrous marsupial",
			CreatedAt: date(time.September, 19, 23, 10)},
		&newsdesk.Comment{ArticleID: 3, Author: "butter_bridge", Body: "git push origin master",
			CreatedAt: date(time.June, 20, 7, 24)},
		&newsdesk.Comment{ArticleID: 6, Author: "butter_bridge", Body: "This is a bad article name",
			Votes: 1, CreatedAt: date(time.October, 11, 15, 23)},
	)

	return d
}
