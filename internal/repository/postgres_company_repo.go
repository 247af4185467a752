package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ymatsuda/pirouette/internal/model"
)

// PostgresCompanyRepo はPostgreSQLを使用したバレエ団リポジトリ。
type PostgresCompanyRepo struct {
	db *sql.DB
}

// NewPostgresCompanyRepo はPostgresCompanyRepoを生成する。
func NewPostgresCompanyRepo(db *sql.DB) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{db: db}
}

// FindByID は指定IDのバレエ団を取得する。見つからない場合はnilを返す。
func (r *PostgresCompanyRepo) FindByID(ctx context.Context, companyID string) (*model.Company, error) {
	company := &model.Company{}

	err := r.db.QueryRowContext(ctx,
		`SELECT company_id, name, short_name, description, logo_url, website_url,
		        last_scraped, created_at, updated_at
		 FROM companies WHERE company_id = $1`,
		companyID,
	).Scan(
		&company.CompanyID, &company.Name, &company.ShortName,
		&company.Description, &company.LogoURL, &company.WebsiteURL,
		&company.LastScraped, &company.CreatedAt, &company.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("バレエ団の取得に失敗しました: %w", err)
	}

	return company, nil
}

// List は全バレエ団を名前順で取得する。
func (r *PostgresCompanyRepo) List(ctx context.Context) ([]*model.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT company_id, name, short_name, description, logo_url, website_url,
		        last_scraped, created_at, updated_at
		 FROM companies ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("バレエ団一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var companies []*model.Company
	for rows.Next() {
		company := &model.Company{}
		if err := rows.Scan(
			&company.CompanyID, &company.Name, &company.ShortName,
			&company.Description, &company.LogoURL, &company.WebsiteURL,
			&company.LastScraped, &company.CreatedAt, &company.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("バレエ団のスキャンに失敗しました: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("バレエ団一覧の走査に失敗しました: %w", err)
	}

	return companies, nil
}

// Upsert はバレエ団を保存する。既存ならスクレイプ結果で上書きする。
func (r *PostgresCompanyRepo) Upsert(ctx context.Context, company *model.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (company_id, name, short_name, description, logo_url,
		                        website_url, last_scraped, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		 ON CONFLICT (company_id) DO UPDATE SET
		    name = EXCLUDED.name,
		    short_name = EXCLUDED.short_name,
		    description = EXCLUDED.description,
		    logo_url = EXCLUDED.logo_url,
		    website_url = EXCLUDED.website_url,
		    last_scraped = EXCLUDED.last_scraped,
		    updated_at = NOW()`,
		company.CompanyID, company.Name, company.ShortName, company.Description,
		company.LogoURL, company.WebsiteURL, company.LastScraped,
	)
	if err != nil {
		return fmt.Errorf("バレエ団の保存に失敗しました: %w", err)
	}
	return nil
}
