package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"datablog/internal/dto"
	"datablog/internal/middleware"
	"datablog/internal/models"
	"datablog/internal/repository"
	"datablog/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password of every generated demo account.
const DemoPassword = "password123"

// DemoResult counts what Demo created.
type DemoResult struct {
	Users    int
	Posts    int
	Comments int
}

// Demo generates users, posts and comment threads with gofakeit. Posts are spread over
// the existing categories and tags.
func (s *Seeder) Demo(ctx context.Context, opts Options) (*DemoResult, error) {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(seed)
	res := &DemoResult{}

	role, err := s.store.Roles().GetByName(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	authors := make([]uint, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		first, last := faker.FirstName(), faker.LastName()
		u, err := s.users.Create(ctx, dto.UserDTO{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s.%d@demo.datablog.dev", strings.ToLower(first), strings.ToLower(last), i),
			Password:  DemoPassword,
		}, role.ID)
		if err != nil {
			return nil, err
		}
		authors = append(authors, u.ID)
		res.Users++
	}
	if len(authors) == 0 {
		return res, nil
	}

	categories, _, err := s.store.Categories().List(ctx, repository.PageQuery{Size: repository.MaxPageSize})
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("demo posts need at least one category")
	}
	tags, _, err := s.store.Tags().List(ctx, repository.PageQuery{Size: repository.MaxPageSize})
	if err != nil {
		return nil, err
	}

	for i := 0; i < opts.Posts; i++ {
		title := fmt.Sprintf("%s (%d)", strings.TrimSuffix(faker.Sentence(4), "."), i)
		post, err := s.posts.Create(ctx, service.CreatePostInput{
			Post: dto.PostDTO{
				Title:     title,
				MetaTitle: "About " + title,
				Slug:      fmt.Sprintf("demo-post-%d-%s", i, strings.ToLower(faker.Word())),
				Summary:   faker.Sentence(12),
				Content:   faker.Paragraph(3, 4, 12, "\n\n"),
			},
			UserID:     authors[faker.Number(0, len(authors)-1)],
			CategoryID: categories[faker.Number(0, len(categories)-1)].ID,
			TagIDs:     pickTags(faker, tags),
		})
		if err != nil {
			return nil, err
		}
		res.Posts++

		n, err := s.thread(ctx, faker, post.ID, authors, opts.CommentsPerPost)
		if err != nil {
			return nil, err
		}
		res.Comments += n
	}

	middleware.Logger.InfoContext(ctx, "demo content seeded",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}

// thread writes count comments on a post. After the first one, each comment replies to an
// earlier comment of the thread about half of the time.
func (s *Seeder) thread(ctx context.Context, faker *gofakeit.Faker, postID uint, authors []uint, count int) (int, error) {
	var written []uint
	for i := 0; i < count; i++ {
		in := service.CreateCommentInput{
			Content: faker.Sentence(faker.Number(6, 20)),
			PostID:  postID,
			UserID:  authors[faker.Number(0, len(authors)-1)],
		}
		if len(written) > 0 && faker.Bool() {
			parent := written[faker.Number(0, len(written)-1)]
			in.ParentID = &parent
		}
		c, err := s.comments.Create(ctx, in)
		if err != nil {
			return len(written), err
		}
		written = append(written, c.ID)
	}
	return len(written), nil
}

func pickTags(faker *gofakeit.Faker, tags []*models.Tag) []uint {
	if len(tags) == 0 {
		return nil
	}
	n := faker.Number(1, min(3, len(tags)))
	ids := make([]uint, 0, n)
	for _, i := range faker.Rand.Perm(len(tags))[:n] {
		ids = append(ids, tags[i].ID)
	}
	return ids
}
