// Package fallback はスクレイプ失敗時に供給するプレースホルダデータセットを定義する。
// 各バレエ団の代表的な演目をその年の典型的な時期に配置した静的データで、
// サイト構造の変更やネットワーク障害があってもAPIが空にならないことを保証する。
package fallback

import (
	"fmt"
	"time"

	"github.com/ymatsuda/pirouette/internal/model"
)

// DatasetVersion はプレースホルダデータセットの版。データ更新時に繰り上げる。
const DatasetVersion = "2025.1"

// Dataset は1バレエ団分のプレースホルダデータ。
type Dataset struct {
	Info         model.CompanyInfo
	Performances []model.RawPerformance
}

// span は同一年内の期間表記を生成する。
func span(year int, m1 time.Month, d1 int, m2 time.Month, d2 int) string {
	return fmt.Sprintf("%s %d – %s %d, %d", m1, d1, m2, d2, year)
}

// Info はバレエ団の基本情報のプレースホルダを返す。
func Info(companyID string) (model.CompanyInfo, bool) {
	info, ok := companyInfos[companyID]
	return info, ok
}

var companyInfos = map[string]model.CompanyInfo{
	"nbc": {
		Name:        "National Ballet of Canada",
		ShortName:   "NBC",
		Description: "Founded in 1951, the National Ballet of Canada is one of the premier dance companies in North America. Based in Toronto, the company performs a traditional and contemporary repertoire of the highest caliber.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=NBC+Logo",
		WebsiteURL:  "https://national.ballet.ca",
	},
	"abt": {
		Name:        "American Ballet Theatre",
		ShortName:   "ABT",
		Description: "Founded in 1940, American Ballet Theatre is recognized as one of the world's leading classical ballet companies. Based in New York City, ABT annually tours the United States and around the world.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=ABT+Logo",
		WebsiteURL:  "https://www.abt.org",
	},
	"rb": {
		Name:        "The Royal Ballet",
		ShortName:   "RB",
		Description: "The Royal Ballet is one of the world's greatest ballet companies. Based at the Royal Opera House in London's Covent Garden, it brings together today's most dynamic and versatile dancers with a world-class orchestra and leading choreographers, composers, conductors, directors and creative teams to share awe-inspiring theatrical experiences with diverse audiences worldwide.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=RB+Logo",
		WebsiteURL:  "https://www.rbo.org.uk/about/the-royal-ballet",
	},
	"stuttgart": {
		Name:        "Stuttgart Ballet",
		ShortName:   "STUTTGART",
		Description: "The Stuttgart Ballet is one of the world's leading ballet companies with a rich history dating back to the 18th century. Under the direction of Tamas Detrich, the company continues its tradition of excellence in classical ballet while embracing contemporary works. Based in Stuttgart, Germany, the company is known for its versatile dancers and diverse repertoire.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=Stuttgart+Ballet+Logo",
		WebsiteURL:  "https://www.stuttgart-ballet.de",
	},
	"boston": {
		Name:        "Boston Ballet",
		ShortName:   "BOSTON",
		Description: "Boston Ballet is an internationally recognized professional classical ballet company based in Boston, Massachusetts. Founded in 1963, the company is one of the major ballet companies in North America and is known for its classical, neo-classical, and contemporary repertoire. Under the artistic direction of Mikko Nissinen, Boston Ballet has established itself as a leader in the world of dance.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=Boston+Ballet+Logo",
		WebsiteURL:  "https://www.bostonballet.org",
	},
	"bolshoi": {
		Name:        "Bolshoi Ballet",
		ShortName:   "BOLSHOI",
		Description: "The Bolshoi Ballet is an internationally renowned classical ballet company, based at the Bolshoi Theatre in Moscow, Russia. Founded in 1776, the Bolshoi is among the world's oldest and most prestigious ballet companies.",
		LogoURL:     "https://via.placeholder.com/150x150.png?text=Bolshoi+Logo",
		WebsiteURL:  "https://www.bolshoi.ru/en/",
	},
}

// ForCompany は指定バレエ団のプレースホルダデータセットを返す。
// 日付は基準時刻の年に合わせて生成されるため、年が変わっても破綻しない。
func ForCompany(companyID string, now time.Time) (Dataset, bool) {
	info, ok := companyInfos[companyID]
	if !ok {
		return Dataset{}, false
	}

	year := now.Year()
	var perfs []model.RawPerformance

	switch companyID {
	case "nbc":
		perfs = []model.RawPerformance{
			{
				Title:       "Romeo and Juliet",
				DateText:    span(year, time.March, 20, time.April, 10),
				Description: "Alexei Ratmansky's passionate reimagining of Shakespeare's tragic love story set to Prokofiev's powerful score. This innovative production brings fresh perspective to the classic tale of star-crossed lovers, featuring breathtaking choreography that highlights the technical brilliance of the company's dancers.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Romeo+and+Juliet",
				VideoURL:    "https://www.youtube.com/embed/4fHw4GeW3EU",
			},
			{
				Title:       "Spring Mixed Program",
				DateText:    span(year, time.May, 5, time.May, 15),
				Description: "A vibrant collection of contemporary works featuring Crystal Pite's 'Angels' Atlas' and Balanchine's 'Serenade'. This dynamic program showcases the versatility of the company with three distinct pieces that span the range of ballet today.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Spring+Mixed+Program",
				VideoURL:    "https://www.youtube.com/embed/Urz4v1JVXZQ",
			},
			{
				Title:       "Giselle",
				DateText:    span(year, time.June, 10, time.June, 20),
				Description: "The romantic classic of love, betrayal, and forgiveness with ethereal choreography and Adolphe Adam's memorable score. One of the oldest continually performed ballets, Giselle tells the story of a peasant girl who dies of a broken heart after discovering her lover is betrothed to another.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Giselle",
				VideoURL:    "https://www.youtube.com/embed/eSx_kqe6ox0",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.December, 10, time.December, 31),
				Description: "The beloved holiday classic returns with Tchaikovsky's magical score and James Kudelka's enchanting choreography. This distinctly Canadian production follows Misha and Marie on a magical Christmas Eve adventure.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Nutcracker",
				VideoURL:    "https://www.youtube.com/embed/YR5USHu6D6U",
			},
			{
				Title:       "Swan Lake",
				DateText:    span(year+1, time.March, 5, time.March, 20),
				Description: "The timeless tale of love and deception featuring Tchaikovsky's iconic score and Karen Kain's breathtaking choreography. This production honors the classical legacy of Swan Lake while incorporating fresh perspectives.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Swan+Lake",
				VideoURL:    "https://www.youtube.com/embed/9rJoB7y6Ncs",
			},
		}
	case "abt":
		perfs = []model.RawPerformance{
			{
				Title:       "Swan Lake",
				DateText:    span(year, time.March, 25, time.April, 5),
				Description: "American Ballet Theatre's sumptuous production of Swan Lake, choreographed by Kevin McKenzie after Marius Petipa and Lev Ivanov, features Tchaikovsky's iconic score and exquisite costumes by Zack Brown. This beloved classic tells the story of Odette, a princess turned into a swan by an evil sorcerer's curse.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ABT+Swan+Lake",
				VideoURL:    "https://www.youtube.com/embed/9rJoB7y6Ncs",
			},
			{
				Title:       "Don Quixote",
				DateText:    span(year, time.May, 15, time.May, 25),
				Description: "ABT's vibrant production of Don Quixote, staged by Kevin McKenzie and Susan Jones, brings Ludwig Minkus's score and the colorful world of Cervantes's novel to life. This comedic ballet follows the adventures of the eccentric knight Don Quixote and his faithful squire Sancho Panza.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ABT+Don+Quixote",
				VideoURL:    "https://www.youtube.com/embed/IGzJiRrIBGk",
			},
			{
				Title:       "Romeo and Juliet",
				DateText:    span(year, time.June, 20, time.June, 30),
				Description: "Kenneth MacMillan's masterful interpretation of Shakespeare's enduring romantic tragedy has become one of ABT's signature productions. Set to Prokofiev's magnificent score, this Romeo and Juliet features breathtaking choreography, sword fights, and passionate pas de deux.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ABT+Romeo+and+Juliet",
				VideoURL:    "https://www.youtube.com/embed/4fHw4GeW3EU",
			},
			{
				Title:       "Giselle",
				DateText:    span(year, time.October, 15, time.October, 25),
				Description: "ABT's production of Giselle, staged by Kevin McKenzie after Jean Coralli, Jules Perrot, and Marius Petipa, epitomizes the Romantic ballet tradition. This haunting tale of love, betrayal, and forgiveness follows a peasant girl who dies of a broken heart after discovering her beloved is betrothed to another.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ABT+Giselle",
				VideoURL:    "https://www.youtube.com/embed/eSx_kqe6ox0",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.December, 12, time.December, 31),
				Description: "Alexei Ratmansky's enchanting production of The Nutcracker for American Ballet Theatre brings fresh perspective to this holiday classic. Set to Tchaikovsky's beloved score, the ballet follows young Clara's journey through a magical Christmas Eve adventure.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ABT+Nutcracker",
				VideoURL:    "https://www.youtube.com/embed/YR5USHu6D6U",
			},
		}
	case "rb":
		perfs = []model.RawPerformance{
			{
				Title:       "Balanchine: Three Signature Works",
				DateText:    span(year, time.March, 28, time.April, 8),
				Description: "Sensuous and shimmering beauty in three works by the man who defined American ballet. With its extreme speed, dynamism and athleticism, Balanchine's choreography pushed the boundaries of the art form.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Balanchine+Three+Signature+Works",
				VideoURL:    "https://www.youtube.com/embed/XFzSh-XVhBw",
			},
			{
				Title:       "Romeo and Juliet",
				DateText:    span(year, time.April, 15, time.May, 2),
				Description: "Kenneth MacMillan's passionate choreography for Romeo and Juliet shows The Royal Ballet at its dramatic finest. Set to Prokofiev's iconic score, this production has been a cornerstone of the Company's repertory since its creation in 1965.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Romeo+and+Juliet",
				VideoURL:    "https://www.youtube.com/embed/AhB9UoQXr0U",
			},
			{
				Title:       "Swan Lake",
				DateText:    span(year, time.May, 10, time.May, 28),
				Description: "The Royal Ballet's sumptuous production of Swan Lake returns to the Royal Opera House stage. Prince Siegfried chances upon a flock of swans while out hunting. When one of the swans turns into a beautiful woman, Odette, he is enraptured. But she is under a spell that holds her captive, allowing her to regain her human form only at night.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Swan+Lake",
				VideoURL:    "https://www.youtube.com/embed/9rJoB7y6Ncs",
			},
			{
				Title:       "The Sleeping Beauty",
				DateText:    span(year, time.June, 5, time.June, 20),
				Description: "The Sleeping Beauty holds a very special place in The Royal Ballet's heart and history. It was the first performance given by the Company when the Royal Opera House reopened at Covent Garden in 1946 after World War II. In 2006, this original staging was revived and has been delighting audiences ever since.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Sleeping+Beauty",
				VideoURL:    "https://www.youtube.com/embed/1-94SzKX1Wo",
			},
			{
				Title:       "Woolf Works",
				DateText:    span(year, time.July, 8, time.July, 19),
				Description: "Wayne McGregor's ballet triptych Woolf Works, inspired by the writings of Virginia Woolf, returns to the Royal Opera House. Named \"a compellingly moving experience\" by The Independent, Woolf Works met with outstanding critical acclaim on its premiere in 2015, and went on to win McGregor the Critics' Circle Award for Best Classical Choreography and the Olivier Award for Best New Dance Production.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Woolf+Works",
				VideoURL:    "https://www.youtube.com/embed/QwCmTjJZPo8",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.December, 5, time.December, 30),
				Description: "The Royal Ballet's glorious production of The Nutcracker, created by Peter Wright in 1984, is the production par excellence of an all-time ballet favorite. On Christmas Eve, Clara receives an enchanted Nutcracker as a gift. Together they defeat the Mouse King and journey through the glistening Land of Snow to the Kingdom of Sweets, where the Sugar Plum Fairy and her Prince greet them with a celebration of dances from around the world.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Nutcracker",
				VideoURL:    "https://www.youtube.com/embed/so5HKPJvCBM",
			},
		}
	case "stuttgart":
		perfs = []model.RawPerformance{
			{
				Title:       "Swan Lake",
				DateText:    span(year, time.January, 15, time.January, 30),
				Description: "The Stuttgart Ballet presents Tchaikovsky's masterpiece Swan Lake. This timeless ballet tells the story of Prince Siegfried who falls in love with Odette, a princess turned into a swan by an evil sorcerer's curse.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Swan+Lake",
			},
			{
				Title:       "The Sleeping Beauty",
				DateText:    span(year, time.March, 10, time.March, 25),
				Description: "Experience the magic of The Sleeping Beauty, a ballet in a prologue and three acts. The Stuttgart Ballet brings to life the classic fairy tale of Princess Aurora, who falls into a deep sleep and can only be awakened by true love's kiss.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Sleeping+Beauty",
			},
			{
				Title:       "Romeo and Juliet",
				DateText:    span(year, time.May, 5, time.May, 20),
				Description: "John Cranko's Romeo and Juliet is a masterpiece of narrative ballet. The Stuttgart Ballet performs this tragic love story set to Prokofiev's powerful score, bringing Shakespeare's timeless tale to life through dance.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Romeo+and+Juliet",
			},
			{
				Title:       "Onegin",
				DateText:    span(year, time.September, 12, time.September, 27),
				Description: "Based on Alexander Pushkin's verse novel, John Cranko's Onegin is a dramatic ballet that follows the story of the arrogant Eugene Onegin and his rejection of the young Tatiana, only to later realize his love for her when it's too late.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Onegin",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.December, 10, time.December, 30),
				Description: "Celebrate the holiday season with The Nutcracker. This enchanting ballet tells the story of Clara and her magical journey with her Nutcracker Prince through the Land of Snow to the Kingdom of Sweets.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Nutcracker",
			},
		}
	case "boston":
		perfs = []model.RawPerformance{
			{
				Title:       "Swan Lake",
				DateText:    span(year, time.February, 20, time.March, 7),
				Description: "Boston Ballet presents Mikko Nissinen's Swan Lake, the timeless classical ballet of all time. With its iconic Tchaikovsky score, this tale of true love and deception features the beautiful swan queen Odette, the pure-hearted Prince Siegfried, and the evil Von Rothbart.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Swan+Lake",
			},
			{
				Title:       "ChoreograpHER",
				DateText:    span(year, time.March, 19, time.March, 29),
				Description: "Boston Ballet's ChoreograpHER initiative highlights the work of innovative female choreographers from Boston Ballet and beyond. This program features world premieres and contemporary works that showcase the creativity and vision of women in ballet.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=ChoreograpHER",
			},
			{
				Title:       "Don Quixote",
				DateText:    span(year, time.May, 8, time.May, 18),
				Description: "Boston Ballet brings Rudolf Nureyev's Don Quixote to life with its vibrant characters, virtuosic dancing, and Spanish-inspired choreography. Based on Cervantes' classic novel, this ballet follows the adventures of the eccentric knight Don Quixote and his faithful squire Sancho Panza.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Don+Quixote",
			},
			{
				Title:       "Jewels",
				DateText:    span(year, time.November, 6, time.November, 16),
				Description: "Boston Ballet presents George Balanchine's Jewels, a full-length, three-act plotless ballet that uses the music of three different composers. Emeralds, Rubies, and Diamonds each represent the three different dance schools that contributed to Balanchine's style: French, American, and Russian.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Jewels",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.November, 27, time.December, 31),
				Description: "Experience the magic of the holidays with Boston Ballet's production of Mikko Nissinen's The Nutcracker. This beloved holiday tradition captures the wonder and excitement of the season through brilliant dancing, magnificent sets and costumes, and the timeless music of Tchaikovsky.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Nutcracker",
			},
		}
	case "bolshoi":
		perfs = []model.RawPerformance{
			{
				Title:       "Swan Lake",
				DateText:    span(year, time.June, 15, time.June, 20),
				Description: "Tchaikovsky's masterpiece performed by the Bolshoi Ballet.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Swan+Lake",
			},
			{
				Title:       "La Bayadère",
				DateText:    span(year, time.August, 1, time.August, 6),
				Description: "An exotic and tragic love story set in Royal India.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=La+Bayadère",
			},
			{
				Title:       "Don Quixote",
				DateText:    span(year, time.September, 10, time.September, 15),
				Description: "A spirited ballet based on Cervantes' famous novel.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Don+Quixote",
			},
			{
				Title:       "Romeo and Juliet",
				DateText:    span(year, time.November, 5, time.November, 10),
				Description: "Prokofiev's passionate ballet brings Shakespeare's tragedy to life.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=Romeo+and+Juliet",
			},
			{
				Title:       "The Nutcracker",
				DateText:    span(year, time.December, 20, time.December, 30),
				Description: "A magical Christmas ballet featuring Tchaikovsky's beloved score.",
				ImageURL:    "https://via.placeholder.com/800x400.png?text=The+Nutcracker",
			},
		}
	}

	return Dataset{Info: info, Performances: perfs}, true
}
