package fixtures

import (
	"regexp"
	"strings"
	"time"

	"github.com/newsdesk/newsdesk"
)

var developmentUsers = []string{"tintin", "milou", "haddock", "castafiore", "tournesol"}

var developmentTopics = []*newsdesk.Topic{
	{Slug: "cosmos", Description: "Billions upon billions"},
	{Slug: "stars", Description: "Made in the interiors of collapsing stars"},
	{Slug: "life", Description: "Creatures of the cosmos"},
}

var lorem = `Globular star cluster star stuff harvesting star light gathered by gravity take root and flourish vastness is bearable only through love Orion's sword. The only home we've ever known a still more glorious dawn awaits hearts of the stars culture a mote of dust suspended in a sunbeam a mote of dust suspended in a sunbeam. Courage of our questions two ghostly white figures in coveralls and helmets are softly dancing tingling of the spine courage of our questions made in the interiors of collapsing stars hearts of the stars.
Dispassionate extraterrestrial observer consciousness cosmic ocean preserve and cherish that pale blue dot brain is the seed of intelligence Hypatia? Circumnavigated the sky calls to us courage of our questions hearts of the stars take root and flourish how far away. Tendrils of gossamer clouds rich in heavy atoms vanquish the impossible another world with pretty stories for which there's little good evidence rich in heavy atoms? A very small stage in a vast cosmic arena courage of our questions descended from astronomers a very small stage in a vast cosmic arena tendrils of gossamer clouds Tunguska event.
Rogue white dwarf ship of the imagination of brilliant syntheses gathered by gravity from which we spring. Astonishment extraordinary claims require extraordinary evidence a mote of dust suspended in a sunbeam a mote of dust suspended in a sunbeam paroxysm of global death intelligent beings. Network of wormholes concept of the number one network of wormholes rich in heavy atoms the only home we've ever known realm of the galaxies.
Of brilliant syntheses culture the carbon in our apple pies something incredible is waiting to be known light years the only home we've ever known. Rings of Uranus paroxysm of global death laws of physics are creatures of the cosmos take root and flourish prime number. Extraplanetary Orion's sword permanence of the stars rich in heavy atoms invent the universe a still more glorious dawn awaits? Citizens of distant epochs Sea of Tranquility invent the universe with pretty stories for which there's little good evidence Sea of Tranquility Sea of Tranquility.
We are the legacy of 15 billion years of cosmic evolution. We have a choice. We can enhance life and come to know the universe that made us, or we can squander our 15 billion year heritage in meaningless self-destruction. What happens in the first second of the next cosmic year depends on what we do, here and now, with our intelligence, and our knowledge of the cosmos.
`

// breakLorem splits the lorem text into sentences, cutting them after the first word
// that goes past 50 characters.
func breakLorem() []string {
	strs := regexp.MustCompile("[!?.] ").Split(lorem, -1)
	var res []string
	for _, s := range strs {
		r := strings.TrimSpace(s)
		if r == "" {
			continue
		}
		if len(r) > 50 {
			idx := strings.IndexByte(r[50:], ' ')
			if idx >= 0 {
				r = r[:50+idx]
			}
		}
		res = append(res, r)
	}

	return res
}

// DevelopmentData returns a dataset to play with locally. Each sentence of a lorem text
// becomes an article, spread over users and topics, the most recent ones within the
// breaking news window relative to now.
func DevelopmentData(now time.Time) *Dataset {
	d := &Dataset{Topics: developmentTopics}
	for _, u := range developmentUsers {
		d.Users = append(d.Users, &newsdesk.User{Username: u})
	}

	strs := breakLorem()
	for i, title := range strs {
		d.Articles = append(d.Articles, &newsdesk.Article{
			Author:    developmentUsers[i%len(developmentUsers)],
			Title:     title,
			Body:      strs[(i+1)%len(strs)],
			Topic:     developmentTopics[i%len(developmentTopics)].Slug,
			Votes:     (i * 7) % 23,
			CreatedAt: now.Add(-time.Duration(i*6) * time.Hour),
		})

		// let's add some comments on the articles
		for j := 0; j < i%4; j++ {
			d.Comments = append(d.Comments, &newsdesk.Comment{
				ArticleID: int64(i + 1),
				Author:    developmentUsers[j%len(developmentUsers)],
				Body:      strs[j%len(strs)],
				Votes:     j,
				CreatedAt: now.Add(-time.Duration(i*6) * time.Hour).Add(time.Duration(j+1) * time.Minute),
			})
		}
	}

	return d
}
