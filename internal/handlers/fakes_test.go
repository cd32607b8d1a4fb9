package handlers

import (
	"sort"

	"github.com/antonv42/textpost/backend/internal/models"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for all repositories, used to test
// handler behavior without a database
type fakeStore struct {
	users    map[uint]*models.User
	groups   map[uint]*models.Group
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	follows  map[[2]uint]bool
	nextID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uint]*models.User),
		groups:   make(map[uint]*models.Group),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		follows:  make(map[[2]uint]bool),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

// --- UserRepository ---

func (s *fakeStore) CreateUser(user *models.User) error {
	user.ID = s.id()
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetUserByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *fakeStore) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) UpdateUser(user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) DeleteUser(id uint) error {
	delete(s.users, id)
	return nil
}

// --- GroupRepository ---

func (s *fakeStore) CreateGroup(group *models.Group) error {
	group.ID = s.id()
	s.groups[group.ID] = group
	return nil
}

func (s *fakeStore) GetGroupByID(id uint) (*models.Group, error) {
	group, ok := s.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return group, nil
}

func (s *fakeStore) GetGroupBySlug(slug string) (*models.Group, error) {
	for _, group := range s.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) GetGroups() ([]models.Group, error) {
	groups := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (s *fakeStore) UpdateGroup(group *models.Group) error {
	s.groups[group.ID] = group
	return nil
}

func (s *fakeStore) DeleteGroup(id uint) error {
	for _, post := range s.posts {
		if post.GroupID != nil && *post.GroupID == id {
			post.GroupID = nil
			post.Group = nil
		}
	}
	delete(s.groups, id)
	return nil
}

// --- PostRepository ---

func (s *fakeStore) loaded(post *models.Post) models.Post {
	out := *post
	if author, ok := s.users[post.AuthorID]; ok {
		out.Author = *author
	}
	if post.GroupID != nil {
		if group, ok := s.groups[*post.GroupID]; ok {
			out.Group = group
		}
	}
	return out
}

func (s *fakeStore) CreatePost(post *models.Post) error {
	post.ID = s.id()
	s.posts[post.ID] = post
	return nil
}

func (s *fakeStore) CreatePosts(posts []*models.Post) error {
	for _, post := range posts {
		if err := s.CreatePost(post); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStore) GetPostByID(id uint) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := s.loaded(post)
	return &loaded, nil
}

func (s *fakeStore) matching(pred func(*models.Post) bool) []models.Post {
	var posts []models.Post
	for _, post := range s.posts {
		if pred(post) {
			posts = append(posts, s.loaded(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].PubDate.After(posts[j].PubDate) })
	return posts
}

func page(posts []models.Post, offset, limit int) []models.Post {
	if offset >= len(posts) {
		return []models.Post{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (s *fakeStore) GetPosts(offset, limit int) ([]models.Post, error) {
	return page(s.matching(func(*models.Post) bool { return true }), offset, limit), nil
}

func (s *fakeStore) CountPosts() (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *fakeStore) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	return page(s.matching(func(p *models.Post) bool { return p.AuthorID == authorID }), offset, limit), nil
}

func (s *fakeStore) CountPostsByAuthorID(authorID uint) (int64, error) {
	return int64(len(s.matching(func(p *models.Post) bool { return p.AuthorID == authorID }))), nil
}

func (s *fakeStore) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	return page(s.matching(func(p *models.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }), offset, limit), nil
}

func (s *fakeStore) CountPostsByGroupID(groupID uint) (int64, error) {
	return int64(len(s.matching(func(p *models.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }))), nil
}

func (s *fakeStore) GetPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error) {
	set := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}
	return page(s.matching(func(p *models.Post) bool { return set[p.AuthorID] }), offset, limit), nil
}

func (s *fakeStore) CountPostsByAuthorIDs(authorIDs []uint) (int64, error) {
	set := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}
	return int64(len(s.matching(func(p *models.Post) bool { return set[p.AuthorID] }))), nil
}

func (s *fakeStore) UpdatePost(post *models.Post) error {
	if _, ok := s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *post
	stored.Author = models.User{}
	stored.Group = nil
	s.posts[post.ID] = &stored
	return nil
}

func (s *fakeStore) DeletePost(id uint) error {
	for cid, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.posts, id)
	return nil
}

// --- CommentRepository ---

func (s *fakeStore) CreateComment(comment *models.Comment) error {
	comment.ID = s.id()
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeStore) GetCommentByID(id uint) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (s *fakeStore) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			out := *comment
			if author, ok := s.users[comment.AuthorID]; ok {
				out.Author = *author
			}
			comments = append(comments, out)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].PubDate.After(comments[j].PubDate) })
	return comments, nil
}

func (s *fakeStore) DeleteComment(id uint) error {
	delete(s.comments, id)
	return nil
}

// --- FollowRepository ---

func (s *fakeStore) CreateFollow(userID, authorID uint) error {
	s.follows[[2]uint{userID, authorID}] = true
	return nil
}

func (s *fakeStore) DeleteFollow(userID, authorID uint) error {
	delete(s.follows, [2]uint{userID, authorID})
	return nil
}

func (s *fakeStore) IsFollowing(userID, authorID uint) (bool, error) {
	return s.follows[[2]uint{userID, authorID}], nil
}

func (s *fakeStore) GetFollowedAuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	for edge := range s.follows {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeStore) GetFollowersCount(authorID uint) (int64, error) {
	var count int64
	for edge := range s.follows {
		if edge[1] == authorID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	for edge := range s.follows {
		if edge[0] == userID {
			count++
		}
	}
	return count, nil
}
