package sqlinline

const QCreateDonationsTable = `--sql c64d68ee-17ef-4f7a-bfb7-36d5bf95cbd7
create table if not exists donations (
	id      uuid primary key,
	name    text,
	phone   text,
	purpose text,
	message text,
	country text,
	date    timestamptz not null default now()
);
create index if not exists donations_date_idx on donations (date desc);
`

const QCreateContactsTable = `--sql 982343ca-248f-486c-95ae-1d7961bb1355
create table if not exists contacts (
	id      uuid primary key,
	name    text,
	email   text,
	message text,
	country text,
	date    timestamptz not null default now()
);
create index if not exists contacts_date_idx on contacts (date desc);
`
