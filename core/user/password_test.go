package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_checkPasswordSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		pwd      string
		fullName string
		username string
		email    string
		wantErr  bool
	}{
		{name: "unrelated password", pwd: "tr0ng-mat-khau!", fullName: "Nguyễn Văn Đức", username: "nguyenvanduc0001", email: "nguyenvanduc0001@student.university.edu.vn"},
		{name: "password is the username", pwd: "nguyenvanduc0001", username: "nguyenvanduc0001", wantErr: true},
		{name: "password is the username plus digit", pwd: "nguyenvanduc1", username: "nguyenvanduc0001", wantErr: true},
		{name: "case only differs", pwd: "NguyenVanDuc0001", username: "nguyenvanduc0001", wantErr: true},
		{name: "empty attrs never match", pwd: "whatever123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPasswordSimilarity(tt.pwd, tt.fullName, tt.username, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
